package main

import (
	"os"

	"github.com/vfg2006/adlink-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
