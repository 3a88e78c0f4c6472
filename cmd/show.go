package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/jira"
	"github.com/obsidianops/jira-vault/internal/render"
)

// showCmd prints a ticket as raw structured data without touching the
// vault.
var showCmd = &cobra.Command{
	Use:   "show KEY",
	Short: "Print a ticket as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return err
		}

		ticket, err := client.GetTicket(args[0])
		if err != nil {
			return err
		}

		rendered, err := render.Ticket(ticket, render.FormatJSON, cfg)
		if err != nil {
			return err
		}
		fmt.Print(rendered.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
