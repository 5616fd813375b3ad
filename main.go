// Package main is the entry point for the Kavio CLI application.
// It provides access to the Kavio CRM backend from the terminal.
package main

import (
	"kavio/cli/cmd"
)

func main() {
	cmd.Execute()
}
