// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

// Package main is the entry point for the agent router CLI.
package main

import (
	"os"

	"github.com/similigh/agent-router/cmd/router/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
