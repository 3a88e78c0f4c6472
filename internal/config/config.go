// Package config provides centralized configuration management for the
// application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira  JiraConfig
	Vault VaultConfig

	// IncludeComments controls the comments section of rendered documents.
	IncludeComments bool
	// IncludeAttachments controls the attachments section.
	IncludeAttachments bool
	// IncludeLinks controls the related-tickets section.
	IncludeLinks bool

	// MaxDescriptionLength truncates rendered descriptions; 0 means no limit.
	MaxDescriptionLength int

	// StatusTags, PriorityTags and TypeTags map tracker values to vault
	// tag tokens. Unmapped values fall back to lowercase-hyphenated
	// forms under the same namespace.
	StatusTags   map[string]string
	PriorityTags map[string]string
	TypeTags     map[string]string
}

// JiraConfig holds Jira connection settings.
type JiraConfig struct {
	URL      string
	Username string
	Token    string
}

// VaultConfig holds local vault settings.
type VaultConfig struct {
	// Path is the vault root directory.
	Path string
	// TicketsFolder is the subdirectory under the vault root that
	// holds synced tickets.
	TicketsFolder string
}

// LoadConfig initializes and loads configuration. Values come from an
// optional .jira-vault config file in the working directory, overridden
// by environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("vault.path", "VAULT_PATH")
	v.BindEnv("vault.tickets_folder", "TICKETS_FOLDER")

	v.SetDefault("vault.path", ".")
	v.SetDefault("vault.tickets_folder", "tickets")
	v.SetDefault("include.comments", true)
	v.SetDefault("include.attachments", true)
	v.SetDefault("include.links", true)
	v.SetDefault("max_description_length", 0)

	v.SetConfigName(".jira-vault")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Jira: JiraConfig{
			URL:      v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
		Vault: VaultConfig{
			Path:          v.GetString("vault.path"),
			TicketsFolder: v.GetString("vault.tickets_folder"),
		},
		IncludeComments:      v.GetBool("include.comments"),
		IncludeAttachments:   v.GetBool("include.attachments"),
		IncludeLinks:         v.GetBool("include.links"),
		MaxDescriptionLength: v.GetInt("max_description_length"),
		StatusTags:           defaultStatusTags(),
		PriorityTags:         defaultPriorityTags(),
		TypeTags:             defaultTypeTags(),
	}

	for key, tag := range v.GetStringMapString("tags.status") {
		config.StatusTags[strings.ToLower(key)] = tag
	}
	for key, tag := range v.GetStringMapString("tags.priority") {
		config.PriorityTags[strings.ToLower(key)] = tag
	}
	for key, tag := range v.GetStringMapString("tags.type") {
		config.TypeTags[strings.ToLower(key)] = tag
	}

	return config, nil
}

// ValidateJiraConfig ensures the Jira connection settings are present.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// StatusTag returns the vault tag for a tracker status.
func (c *Config) StatusTag(status string) string {
	return lookupTag(c.StatusTags, status, "status")
}

// PriorityTag returns the vault tag for a tracker priority.
func (c *Config) PriorityTag(priority string) string {
	return lookupTag(c.PriorityTags, priority, "priority")
}

// TypeTag returns the vault tag for a tracker issue type.
func (c *Config) TypeTag(issueType string) string {
	return lookupTag(c.TypeTags, issueType, "type")
}

// lookupTag resolves case-insensitively: the maps are keyed lowercase
// because viper lowercases config-file keys, and tracker values arrive
// in display case.
func lookupTag(mapping map[string]string, value, namespace string) string {
	if tag, ok := mapping[strings.ToLower(value)]; ok {
		return tag
	}
	return namespace + "/" + strings.ReplaceAll(strings.ToLower(value), " ", "-")
}

func defaultStatusTags() map[string]string {
	return map[string]string{
		"to do":       "status/todo",
		"in progress": "status/in-progress",
		"ready":       "status/ready",
		"done":        "status/done",
		"closed":      "status/closed",
	}
}

func defaultPriorityTags() map[string]string {
	return map[string]string{
		"highest": "priority/highest",
		"high":    "priority/high",
		"medium":  "priority/medium",
		"low":     "priority/low",
		"lowest":  "priority/lowest",
	}
}

func defaultTypeTags() map[string]string {
	return map[string]string{
		"epic":     "type/epic",
		"story":    "type/story",
		"task":     "type/task",
		"bug":      "type/bug",
		"sub-task": "type/subtask",
	}
}
