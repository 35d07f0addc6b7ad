package main

import (
	"os"

	"github.com/tj-smith47/tado-go/cmd/tado/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
