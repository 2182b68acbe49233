// Package main is the entry point for the jade2html CLI tool.
// jade2html renders Jade templates to HTML as named build tasks.
package main

import (
	"os"

	"github.com/jpequegn/jade2html/cmd/jade2html/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
