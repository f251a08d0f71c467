/*
Copyright 2024 Tim St. Pierre
*/

// Panelctl sends commands to the I2C character-display panel.
//
// Usage:
//
//	panelctl [command] [flags]
//
// Every command accepts --dry-run, which prints the encoded frame as hex
// instead of opening the bus.
package main

import (
	"fmt"
	"os"
)

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
