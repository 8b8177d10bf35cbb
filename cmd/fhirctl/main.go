package main

import (
	"os"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "develop"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
