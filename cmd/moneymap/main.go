package main

import (
	"os"

	"github.com/Nebulazer123/moneymap/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
