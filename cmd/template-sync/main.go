package main

import (
	"os"

	"github.com/bianoble/template-sync/cmd/template-sync/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
