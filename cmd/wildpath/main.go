// Package main is the entry point for the wildpath CLI.
package main

import (
	"github.com/wildpath/wildpath/internal/cmd"
)

func main() {
	cmd.Execute()
}
