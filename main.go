package main

import (
	"os"

	"github.com/abhisek/certcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
