package main

import (
	"fmt"
	"os"

	"github.com/docquery/cli/config"
	"github.com/docquery/cli/internal/cli"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(cfg); err != nil {
		os.Exit(1)
	}
}
