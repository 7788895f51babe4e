// Command dnskey decodes, encodes and fetches DNSKEY records from the command line.
//
// Usage:
//
//	dnskey decode 0101030803010001...
//	dnskey encode --flags 257 --alg ECDSAP256SHA256 --key <hex>
//	dnskey query --server 8.8.8.8 --zone example.com
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
