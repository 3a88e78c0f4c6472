// Package main is the entry point for jira-vault.
package main

import (
	"fmt"
	"os"

	"github.com/obsidianops/jira-vault/cmd"
	"github.com/obsidianops/jira-vault/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
