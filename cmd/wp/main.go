// Package main is the entry point for the wp CLI (alias for wildpath).
package main

import (
	"github.com/wildpath/wildpath/internal/cmd"
)

func main() {
	cmd.Execute()
}
