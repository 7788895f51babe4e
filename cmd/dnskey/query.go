package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jroosing/hydrakey/internal/resolvers"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var (
		servers []string
		zone    string
		timeout time.Duration
		retries int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Fetch a zone's DNSKEY RRset from upstream resolvers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher := resolvers.NewKeyFetcher(resolvers.FetcherConfig{
				Servers:    servers,
				UDPTimeout: timeout,
				TCPTimeout: timeout,
				MaxRetries: retries,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout*time.Duration(len(servers)*(retries+2)))
			defer cancel()

			ks, err := fetcher.FetchDNSKEYs(ctx, zone)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d DNSKEY records from %s (TTL %d, AD=%t)\n",
				ks.Zone, len(ks.Keys), ks.Server, ks.TTL, ks.Authenticated)
			if len(ks.Keys) == 0 {
				return nil
			}

			rows := []string{"KeyTag | Flags | Alg | Role | Length"}
			for _, rec := range ks.Keys {
				k := rec.DNSKey
				rows = append(rows, fmt.Sprintf("%d | %d | %s | %s | %d",
					k.KeyTag(), k.Flags(), k.Algorithm, keyRole(k), len(k.PublicKey)))
			}
			printTable(out, rows)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&servers, "server", "s", []string{"8.8.8.8"}, "Upstream resolver, host or host:port (repeatable)")
	cmd.Flags().StringVarP(&zone, "zone", "z", "", "Zone to query")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "Timeout per attempt")
	cmd.Flags().IntVar(&retries, "retries", 1, "Extra UDP attempts per server after a timeout")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}
