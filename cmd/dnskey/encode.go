package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		flags  uint16
		alg    string
		keyHex string
		keyB64 string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode DNSKEY fields into hex RDATA",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if keyHex != "" && keyB64 != "" {
				return fmt.Errorf("--key and --key-base64 are mutually exclusive")
			}
			a, err := dns.ParseAlgorithm(alg)
			if err != nil {
				return err
			}

			var pub []byte
			switch {
			case keyB64 != "":
				if pub, err = base64.StdEncoding.DecodeString(keyB64); err != nil {
					return fmt.Errorf("invalid base64 key: %w", err)
				}
			case keyHex != "":
				if pub, err = decodeHex(keyHex); err != nil {
					return err
				}
			}

			key := dns.DNSKey{
				ZoneKey:          flags&dns.DNSKeyFlagZone != 0,
				SecureEntryPoint: flags&dns.DNSKeyFlagSEP != 0,
				Revoke:           flags&dns.DNSKeyFlagRevoke != 0,
				Algorithm:        a,
				PublicKey:        pub,
			}
			rdata, err := key.MarshalRData()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, hex.EncodeToString(rdata))
			fmt.Fprintf(out, "key tag %d, %d octets\n", key.KeyTag(), len(rdata))
			return nil
		},
	}
	cmd.Flags().Uint16Var(&flags, "flags", dns.DNSKeyFlagZone, "DNSKEY flags field; reserved bits are dropped")
	cmd.Flags().StringVarP(&alg, "alg", "a", "", "Algorithm mnemonic or number")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "Public key in hex")
	cmd.Flags().StringVar(&keyB64, "key-base64", "", "Public key in base64, as in zone files")
	_ = cmd.MarkFlagRequired("alg")
	return cmd
}
