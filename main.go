package main

import (
	"os"

	"github.com/mawngo/pcluster/cmd"
)

func main() {
	cli := cmd.NewCLI()
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
