// Package main is the entry point for the esctl CLI.
package main

import "github.com/karimhaddad/estate-scout/cmd/esctl/cmd"

func main() {
	cmd.Execute()
}
