package main

import (
	"os"

	"github.com/evimeria/catalog-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
