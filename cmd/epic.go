package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/logging"
)

// epicCmd mirrors all tickets of an epic.
var epicCmd = &cobra.Command{
	Use:   "epic KEY",
	Short: "Sync all tickets belonging to an epic",
	Long: `Fetch the epic and every ticket linked to it, store them in a
folder named after the epic, and write an index document listing the
synced tickets.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, _, err := buildSyncer(cmd)
		if err != nil {
			return err
		}

		folder, _ := cmd.Flags().GetBool("folder")
		index, _ := cmd.Flags().GetBool("index")

		logging.Info("syncing epic", "epic", args[0])
		result, err := syncer.SyncEpic(args[0], folder, index)
		if err != nil {
			return err
		}
		return reportResult(result)
	},
}

func init() {
	rootCmd.AddCommand(epicCmd)
	epicCmd.Flags().Bool("folder", true, "store the epic's tickets in a dedicated folder")
	epicCmd.Flags().Bool("index", true, "write an index document for the epic")
}
