package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/logging"
)

// projectCmd mirrors tickets from a whole project.
var projectCmd = &cobra.Command{
	Use:   "project KEY",
	Short: "Sync tickets from a project",
	Long: `Sync tickets from a Jira project into the vault, optionally
filtered by status and issue type.

Example:
  jira-vault project PROJ --status "In Progress" --type Bug`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, _, err := buildSyncer(cmd)
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		issueType, _ := cmd.Flags().GetString("type")
		index, _ := cmd.Flags().GetBool("index")

		logging.Info("syncing project", "project", args[0], "status", status, "type", issueType)
		result, err := syncer.SyncProject(args[0], status, issueType, index)
		if err != nil {
			return err
		}
		return reportResult(result)
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.Flags().String("status", "", "only sync tickets with this status")
	projectCmd.Flags().String("type", "", "only sync tickets of this issue type")
	projectCmd.Flags().Bool("index", true, "write an index document for the project")
}
