package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/jroosing/hydrakey/internal/dns"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "dnskey",
		Short:         "Inspect DNSKEY resource records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(newDecodeCmd(), newEncodeCmd(), newQueryCmd())
	return root
}

// decodeHex accepts hex with optional whitespace and colon separators.
func decodeHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

func keyRole(k dns.DNSKey) string {
	role := "-"
	switch {
	case k.IsKSK():
		role = "KSK"
	case k.ZoneKey:
		role = "ZSK"
	}
	if k.Revoke {
		role += ",REVOKED"
	}
	return role
}

func printTable(w io.Writer, rows []string) {
	fmt.Fprintln(w, columnize.SimpleFormat(rows))
}
