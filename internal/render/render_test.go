package render

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/pkg/models"
)

func testConfig() *config.Config {
	cfg, _ := config.LoadConfig()
	return cfg
}

func testTicket() models.Ticket {
	return models.Ticket{
		Key:         "PROJ-42",
		Summary:     "Fix login timeout",
		Description: "h2. Context\n\nSessions expire with *no warning*.",
		Status:      "In Progress",
		Priority:    "High",
		IssueType:   "Bug",
		Assignee:    "Dana Developer",
		Created:     time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Updated:     time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC),
		Labels:      []string{"auth"},
		EpicKey:     "PROJ-7",
		Subtasks:    []string{"PROJ-43"},
		Links: []models.IssueLink{
			{Direction: "outward", Type: "Blocks", Key: "PROJ-50", Summary: "Rollout"},
		},
		Comments: []models.Comment{
			{Author: "Riley Reporter", Body: "Still happening.", Created: "2024-03-02"},
		},
		Attachments: []models.Attachment{
			{Filename: "trace.log", URL: "https://jira.example.com/attachment/1", Size: 2048},
		},
		URL: "https://jira.example.com/browse/PROJ-42",
	}
}

func TestTicketUnknownFormat(t *testing.T) {
	_, err := Ticket(testTicket(), Format("pdf"), testConfig())
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []Format{FormatObsidian, FormatPlain, FormatJSON}, Formats())
}

func TestRenderObsidian(t *testing.T) {
	rendered, err := Ticket(testTicket(), FormatObsidian, testConfig())
	require.NoError(t, err)
	assert.Equal(t, ".md", rendered.Extension)

	content := rendered.Content
	assert.Contains(t, content, "key: PROJ-42")
	assert.Contains(t, content, "synced: ")
	assert.Contains(t, content, "# PROJ-42: Fix login timeout")
	assert.Contains(t, content, "#status/in-progress #priority/high #type/bug #label/auth")
	assert.Contains(t, content, "## Description\n\n## Context\n\nSessions expire with **no warning**.")
	assert.Contains(t, content, "**Epic:** [[PROJ-7]]")
	assert.Contains(t, content, "- Blocks: [[PROJ-50]] - Rollout")
	assert.Contains(t, content, "- [[PROJ-43]]")
	assert.Contains(t, content, "> [!comment]- Riley Reporter - 2024-03-02")
	assert.Contains(t, content, "- [trace.log](https://jira.example.com/attachment/1) (2.0 KB)")
}

func TestRenderObsidianParentLine(t *testing.T) {
	t.Run("With summary", func(t *testing.T) {
		ticket := testTicket()
		ticket.ParentKey = "PROJ-10"
		ticket.ParentSummary = "Checkout flow"

		rendered, err := Ticket(ticket, FormatObsidian, testConfig())
		require.NoError(t, err)
		assert.Contains(t, rendered.Content, "**Parent:** [[PROJ-10]] - Checkout flow")
	})

	t.Run("Without summary the separator is dropped", func(t *testing.T) {
		ticket := testTicket()
		ticket.ParentKey = "PROJ-10"

		rendered, err := Ticket(ticket, FormatObsidian, testConfig())
		require.NoError(t, err)
		assert.Contains(t, rendered.Content, "**Parent:** [[PROJ-10]]\n")
		assert.NotContains(t, rendered.Content, "[[PROJ-10]] - \n")
	})
}

func TestRenderObsidianSectionToggles(t *testing.T) {
	cfg := testConfig()
	cfg.IncludeComments = false
	cfg.IncludeAttachments = false
	cfg.IncludeLinks = false

	rendered, err := Ticket(testTicket(), FormatObsidian, cfg)
	require.NoError(t, err)

	assert.NotContains(t, rendered.Content, "## Comments")
	assert.NotContains(t, rendered.Content, "## Attachments")
	assert.NotContains(t, rendered.Content, "## Related Tickets")
}

func TestRenderPlain(t *testing.T) {
	rendered, err := Ticket(testTicket(), FormatPlain, testConfig())
	require.NoError(t, err)
	assert.Equal(t, ".md", rendered.Extension)

	content := rendered.Content
	assert.Contains(t, content, "# PROJ-42: Fix login timeout")
	assert.Contains(t, content, "| **Status** | In Progress |")
	assert.Contains(t, content, "### Riley Reporter - 2024-03-02")
	assert.NotContains(t, content, "[[")
	assert.NotContains(t, content, "#status/")
}

func TestRenderJSON(t *testing.T) {
	rendered, err := Ticket(testTicket(), FormatJSON, testConfig())
	require.NoError(t, err)
	assert.Equal(t, ".json", rendered.Extension)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered.Content), &decoded))

	assert.Equal(t, "PROJ-42", decoded["key"])
	assert.Equal(t, "2024-03-05T16:45:00", decoded["updated"])
	assert.Equal(t, "h2. Context\n\nSessions expire with *no warning*.", decoded["description"])
	assert.NotContains(t, decoded, "resolved")
}
