// Package main provides hunterctl, a local single-hunter client backed by a SQLite file.
package main

import (
	"os"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
