// Package main is the entry point for the estate-scout server.
package main

import (
	"os"

	"github.com/karimhaddad/estate-scout/cmd/estate-scout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
