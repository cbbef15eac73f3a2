package main

import (
	"fmt"
	"os"

	"github.com/vasylcode/monobar/cmd/monobar"
)

func main() {
	if err := monobar.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
