package main

import (
	"os"

	"github.com/chronotool/chrono/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
