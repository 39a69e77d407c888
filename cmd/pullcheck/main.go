// Package main is the entry point for the Pullcheck CLI.
package main

import (
	"github.com/pullcheck/pullcheck-bot/cmd/pullcheck/commands"
)

func main() {
	commands.Execute()
}
