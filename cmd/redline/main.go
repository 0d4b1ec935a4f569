package main

import (
	"os"

	"github.com/dshills/redline/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
