package main

import (
	"os"

	"github.com/specvital/splitter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
