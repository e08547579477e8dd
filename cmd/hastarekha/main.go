package main

import (
	"os"

	"github.com/ayusman/hastarekha/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
