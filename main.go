// Package main provides the entry point for r10ksim.
// r10ksim is a cycle-accurate R10K-style out-of-order core simulator built
// on Akita.
//
// For the full CLI, use: go run ./cmd/r10ksim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("r10ksim - R10K Out-of-Order Core Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: r10ksim [options] <trace>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config      Path to core configuration file (JSON or YAML)")
	fmt.Println("  -cycles      Run exactly this many cycles")
	fmt.Println("  -drain       Stop once every instruction has retired")
	fmt.Println("  -max-cycles  Cycle limit when running until drained")
	fmt.Println("  -v           Log every cycle")
	fmt.Println("  -log         Write logs as JSON to a file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/r10ksim' for the full CLI.")
	fmt.Println("Run 'go run ./cmd/tracegen' to generate a random trace.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/r10ksim' instead.")
	}
}
