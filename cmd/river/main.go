package main

import (
	"os"

	"svw.info/rivercrossing/internal/adapters/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
