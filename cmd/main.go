package main

import (
	"fmt"
	"os"

	"autoclicker/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "autoclicker: %v\n", err)
		os.Exit(1)
	}
}
