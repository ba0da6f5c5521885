// Package main is the entry point for the inventoryd service and CLI.
package main

import (
	"os"

	"github.com/cabloomi/inventory/cmd/inventoryd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
