package main

import (
	"os"

	"github.com/dshills/mcpinstall/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
