package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/logging"
	"github.com/obsidianops/jira-vault/internal/sync"
)

// syncCmd mirrors one or more tickets by key.
var syncCmd = &cobra.Command{
	Use:   "sync KEY [KEY...]",
	Short: "Sync tickets into the vault by key",
	Long: `Fetch the given tickets from Jira and store them as markdown
documents in the vault. Documents whose tracked fields and update
timestamp are unchanged are skipped.

Example:
  jira-vault sync PROJ-123 PROJ-124 --vault ~/notes`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, _, err := buildSyncer(cmd)
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		force, _ := cmd.Flags().GetBool("force")

		logging.Info("starting sync", "tickets", len(args), "category", category, "force", force)
		result := syncer.SyncTickets(args, category, force)
		return reportResult(result)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

// reportResult prints a sync summary and surfaces batch errors as a
// command failure after all tickets were attempted.
func reportResult(result sync.Result) error {
	logging.Info("sync complete",
		"synced", result.Synced,
		"created", len(result.Created),
		"updated", len(result.Updated),
		"skipped", len(result.Skipped),
		"errors", len(result.Errors))

	for _, path := range result.Created {
		fmt.Println("created:", path)
	}
	for _, path := range result.Updated {
		fmt.Println("updated:", path)
	}

	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			logging.Error("sync error", "detail", msg)
		}
		return fmt.Errorf("%d of %d tickets failed", len(result.Errors), result.Synced+len(result.Errors))
	}
	return nil
}
