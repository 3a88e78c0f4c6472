package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/jira"
	"github.com/obsidianops/jira-vault/internal/logging"
)

// statusCmd transitions a ticket to a new status.
var statusCmd = &cobra.Command{
	Use:   "status KEY STATUS",
	Short: "Transition a ticket to a new status",
	Long: `Transition a Jira ticket. STATUS may be a transition name, a
transition ID, the target status name, or a suffix of the transition
name ("Ready" matches "Open to Ready").`,
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

		if err := client.UpdateStatus(args[0], args[1]); err != nil {
			return err
		}
		logging.Info("status updated", "ticket", args[0], "status", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
