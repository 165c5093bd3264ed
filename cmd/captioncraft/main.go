package main

import (
	"os"

	"github.com/captioncraft/captioncraft/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
