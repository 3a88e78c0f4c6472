package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/jira"
	"github.com/obsidianops/jira-vault/internal/logging"
	"github.com/obsidianops/jira-vault/internal/markup"
)

// describeCmd replaces a ticket's description. The body is written in
// markdown and converted to wiki markup before pushing.
var describeCmd = &cobra.Command{
	Use:   "describe KEY BODY",
	Short: "Replace a ticket's description",
	Long: `Replace the description of a Jira ticket. The body is markdown and
gets converted to Jira wiki markup on the way out.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return err
		}

		key, body := args[0], markup.ToNative(args[1])
		if err := client.UpdateDescription(key, body); err != nil {
			return err
		}
		logging.Info("description updated", "ticket", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
