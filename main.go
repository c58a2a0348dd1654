package main

import (
	"os"

	"github.com/Tarunjit45/OmniAnalyzer-AI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
