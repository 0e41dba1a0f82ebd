package main

import (
	"os"

	"github.com/simaogato/cryptodash-backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
