package main

import (
	"os"

	"booking-breakdown/cmd/breakdown/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
