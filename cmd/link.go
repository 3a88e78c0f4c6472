package cmd

import (
	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/jira"
	"github.com/obsidianops/jira-vault/internal/logging"
)

// linkCmd creates a typed link between two tickets.
var linkCmd = &cobra.Command{
	Use:   "link FROM TO [TYPE]",
	Short: "Link two tickets",
	Long: `Create a link between two Jira tickets. TYPE is the link type name
and defaults to "Relates".

Example:
  jira-vault link PROJ-123 PROJ-456 Blocks`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return err
		}

		linkType := "Relates"
		if len(args) == 3 {
			linkType = args[2]
		}

		if err := client.LinkTickets(args[0], args[1], linkType); err != nil {
			return err
		}
		logging.Info("tickets linked", "from", args[0], "to", args[1], "type", linkType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
}
