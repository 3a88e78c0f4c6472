// Package cmd provides the command-line interface for jira-vault.
package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/jira"
	"github.com/obsidianops/jira-vault/internal/render"
	"github.com/obsidianops/jira-vault/internal/sync"
	"github.com/obsidianops/jira-vault/internal/vault"
)

var rootCmd = &cobra.Command{
	Use:   "jira-vault",
	Short: "jira-vault mirrors Jira tickets into an Obsidian vault",
	Long: `jira-vault fetches tickets from Jira and stores them as markdown
documents in a local Obsidian vault: frontmatter metadata, tags,
wiki-links between related tickets, comments and attachments.

Documents are only rewritten when the ticket actually changed, so
repeated syncs leave an untouched vault untouched.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("vault", "v", "", "path to the Obsidian vault root (overrides VAULT_PATH)")
	rootCmd.PersistentFlags().StringP("category", "c", "", "vault subdirectory for synced documents (auto-detected when empty)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "rewrite documents even when unchanged")
	rootCmd.PersistentFlags().String("format", "obsidian", "output format: obsidian, plain or json")
}

// buildSyncer assembles the config, client, store and syncer shared by
// all sync-style commands.
func buildSyncer(cmd *cobra.Command) (*sync.Syncer, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if vaultPath, _ := cmd.Flags().GetString("vault"); vaultPath != "" {
		cfg.Vault.Path = vaultPath
	}

	client, err := jira.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	format, _ := cmd.Flags().GetString("format")
	store := vault.NewStore(filepath.Join(cfg.Vault.Path, cfg.Vault.TicketsFolder))
	return sync.NewSyncer(client, store, cfg, render.Format(format)), cfg, nil
}
