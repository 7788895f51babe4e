package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/spf13/cobra"
)

type decodedKey struct {
	Flags     uint16 `json:"flags"`
	Protocol  uint8  `json:"protocol"`
	Algorithm string `json:"algorithm"`
	Role      string `json:"role"`
	KeyTag    uint16 `json:"key_tag"`
	KeyLength int    `json:"key_length"`
	PublicKey string `json:"public_key"`
}

func newDecodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <hex-rdata>...",
		Short: "Decode DNSKEY RDATA given in hex",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rdata, err := decodeHex(strings.Join(args, ""))
			if err != nil {
				return err
			}
			key, err := dns.ParseDNSKeyRData(rdata)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(decodedKey{
					Flags:     key.Flags(),
					Protocol:  dns.DNSKeyProtocol,
					Algorithm: key.Algorithm.String(),
					Role:      keyRole(key),
					KeyTag:    key.KeyTag(),
					KeyLength: len(key.PublicKey),
					PublicKey: base64.StdEncoding.EncodeToString(key.PublicKey),
				})
			}

			alg := fmt.Sprintf("%d (%s)", uint8(key.Algorithm), key.Algorithm)
			if key.Algorithm.Deprecated() {
				alg += " deprecated"
			}
			printTable(out, []string{
				"Field | Value",
				fmt.Sprintf("Flags | %d", key.Flags()),
				fmt.Sprintf("Zone key | %t", key.ZoneKey),
				fmt.Sprintf("Secure entry point | %t", key.SecureEntryPoint),
				fmt.Sprintf("Revoked | %t", key.Revoke),
				fmt.Sprintf("Protocol | %d", dns.DNSKeyProtocol),
				"Algorithm | " + alg,
				"Role | " + keyRole(key),
				fmt.Sprintf("Key tag | %d", key.KeyTag()),
				fmt.Sprintf("Key length | %d", len(key.PublicKey)),
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the key as JSON")
	return cmd
}
