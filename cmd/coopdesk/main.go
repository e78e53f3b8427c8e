package main

import (
	"os"

	"coopdesk/cmd/coopdesk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
