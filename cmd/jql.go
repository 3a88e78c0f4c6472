package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/logging"
)

// jqlCmd mirrors all tickets matching a JQL query.
var jqlCmd = &cobra.Command{
	Use:   "jql QUERY",
	Short: "Sync all tickets matching a JQL query",
	Long: `Run a JQL query against Jira and sync every matching ticket into
the vault.

Example:
  jira-vault jql 'project = PROJ AND status = "In Progress"'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, _, err := buildSyncer(cmd)
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		index, _ := cmd.Flags().GetBool("index")
		indexName, _ := cmd.Flags().GetString("index-name")

		logging.Info("syncing jql query", "jql", args[0])
		result, err := syncer.SyncJQL(args[0], category, index, indexName)
		if err != nil {
			return err
		}
		return reportResult(result)
	},
}

func init() {
	rootCmd.AddCommand(jqlCmd)
	jqlCmd.Flags().Bool("index", true, "write an index document for the query results")
	jqlCmd.Flags().String("index-name", "", "filename for the index document")
}
