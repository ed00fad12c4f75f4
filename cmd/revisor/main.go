package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/revisor-ai/revisor/internal/cli"
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
