package main

import (
	"os"

	"github.com/rustyeddy/natgasvol/cmd/natgasvol/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
