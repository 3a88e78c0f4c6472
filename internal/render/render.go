// Package render turns normalized tickets into vault documents. Each
// output format is a registered renderer returning the formatted
// content and its canonical file extension.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/markdown"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// Format identifies a registered output format.
type Format string

const (
	// FormatObsidian is the richly-linked vault format: metadata
	// block, tags and wiki-links.
	FormatObsidian Format = "obsidian"
	// FormatPlain is portable markdown: metadata table, no
	// vault-specific markup.
	FormatPlain Format = "plain"
	// FormatJSON is the raw structured record.
	FormatJSON Format = "json"
)

// Func renders one ticket in one format.
type Func func(t models.Ticket, cfg *config.Config) (Rendered, error)

// Rendered is a formatted document ready for persistence.
type Rendered struct {
	Content   string
	Extension string
}

// registry maps format identifiers to renderers. Lookup by enumerated
// identifier, not dynamic dispatch.
var registry = map[Format]Func{
	FormatObsidian: renderObsidian,
	FormatPlain:    renderPlain,
	FormatJSON:     renderJSON,
}

// Ticket renders a ticket in the named format. An unregistered format
// is a caller configuration error.
func Ticket(t models.Ticket, format Format, cfg *config.Config) (Rendered, error) {
	fn, ok := registry[format]
	if !ok {
		return Rendered{}, fmt.Errorf("unknown render format: %q", format)
	}
	return fn(t, cfg)
}

// Formats lists the registered format identifiers.
func Formats() []Format {
	return []Format{FormatObsidian, FormatPlain, FormatJSON}
}

func renderObsidian(t models.Ticket, cfg *config.Config) (Rendered, error) {
	var b strings.Builder

	meta, err := markdown.TransformMetadata(t, markdown.MetadataFrontmatter, time.Now())
	if err != nil {
		return Rendered{}, err
	}
	b.WriteString(meta)
	b.WriteString("\n")

	fmt.Fprintf(&b, "# %s: %s\n\n", t.Key, t.Summary)

	if tags := tagLine(t, cfg); tags != "" {
		b.WriteString(tags)
		b.WriteString("\n\n")
	}

	if desc := markdown.TransformDescription(t.Description, cfg.MaxDescriptionLength, true); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	if cfg.IncludeLinks {
		b.WriteString(relatedSection(t))
	}

	if cfg.IncludeComments {
		b.WriteString(markdown.TransformComments(t.Comments, true))
	}

	if cfg.IncludeAttachments {
		b.WriteString(attachmentsSection(t))
	}

	return Rendered{Content: b.String(), Extension: ".md"}, nil
}

func tagLine(t models.Ticket, cfg *config.Config) string {
	var tags []string
	if t.Status != "" {
		tags = append(tags, "#"+cfg.StatusTag(t.Status))
	}
	if t.Priority != "" {
		tags = append(tags, "#"+cfg.PriorityTag(t.Priority))
	}
	if t.IssueType != "" {
		tags = append(tags, "#"+cfg.TypeTag(t.IssueType))
	}
	for _, label := range t.Labels {
		tags = append(tags, markdown.FormatTag(label, "label"))
	}
	return strings.Join(tags, " ")
}

func relatedSection(t models.Ticket) string {
	if t.ParentKey == "" && t.EpicKey == "" && len(t.Links) == 0 && len(t.Subtasks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Related Tickets\n\n")

	if t.ParentKey != "" {
		if t.ParentSummary != "" {
			fmt.Fprintf(&b, "**Parent:** %s - %s\n\n", markdown.WikiLink(t.ParentKey), t.ParentSummary)
		} else {
			fmt.Fprintf(&b, "**Parent:** %s\n\n", markdown.WikiLink(t.ParentKey))
		}
	}
	if t.EpicKey != "" && t.EpicKey != t.ParentKey {
		fmt.Fprintf(&b, "**Epic:** %s\n\n", markdown.WikiLink(t.EpicKey))
	}

	if len(t.Links) > 0 {
		b.WriteString("### Links\n")
		for _, link := range t.Links {
			name := link.Type
			if link.Direction == "inward" {
				name += " (inward)"
			}
			fmt.Fprintf(&b, "- %s: %s - %s\n", name, markdown.WikiLink(link.Key), link.Summary)
		}
		b.WriteString("\n")
	}

	if len(t.Subtasks) > 0 {
		b.WriteString("### Subtasks\n")
		for _, key := range t.Subtasks {
			b.WriteString("- " + markdown.WikiLink(key) + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func attachmentsSection(t models.Ticket) string {
	if len(t.Attachments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Attachments\n\n")
	for _, att := range t.Attachments {
		fmt.Fprintf(&b, "- [%s](%s) (%s)\n", att.Filename, att.URL, markdown.FormatSize(att.Size))
	}
	b.WriteString("\n")
	return b.String()
}

func renderPlain(t models.Ticket, cfg *config.Config) (Rendered, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s: %s\n\n", t.Key, t.Summary)

	meta, err := markdown.TransformMetadata(t, markdown.MetadataTable, time.Now())
	if err != nil {
		return Rendered{}, err
	}
	b.WriteString(meta)
	b.WriteString("\n")

	if desc := markdown.TransformDescription(t.Description, cfg.MaxDescriptionLength, true); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	if cfg.IncludeComments && len(t.Comments) > 0 {
		b.WriteString("## Comments\n\n")
		for _, c := range t.Comments {
			section, err := markdown.TransformComment(c, markdown.CommentHeading)
			if err != nil {
				return Rendered{}, err
			}
			b.WriteString(section)
			b.WriteString("\n")
		}
	}

	return Rendered{Content: b.String(), Extension: ".md"}, nil
}

// ticketJSON is the serialized shape of the raw format.
type ticketJSON struct {
	Key         string              `json:"key"`
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	IssueType   string              `json:"issue_type"`
	Assignee    string              `json:"assignee"`
	Reporter    string              `json:"reporter"`
	Created     string              `json:"created,omitempty"`
	Updated     string              `json:"updated,omitempty"`
	Resolved    string              `json:"resolved,omitempty"`
	Labels      []string            `json:"labels"`
	Components  []string            `json:"components"`
	FixVersions []string            `json:"fix_versions"`
	ParentKey   string              `json:"parent_key,omitempty"`
	EpicKey     string              `json:"epic_key,omitempty"`
	Subtasks    []string            `json:"subtasks"`
	Links       []models.IssueLink  `json:"links"`
	Comments    []models.Comment    `json:"comments"`
	Attachments []models.Attachment `json:"attachments"`
	URL         string              `json:"url"`
}

func renderJSON(t models.Ticket, _ *config.Config) (Rendered, error) {
	isoOrEmpty := func(ts time.Time) string {
		if ts.IsZero() {
			return ""
		}
		return ts.Format("2006-01-02T15:04:05")
	}
	out := ticketJSON{
		Key:         t.Key,
		Summary:     t.Summary,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		IssueType:   t.IssueType,
		Assignee:    t.Assignee,
		Reporter:    t.Reporter,
		Created:     isoOrEmpty(t.Created),
		Updated:     isoOrEmpty(t.Updated),
		Resolved:    isoOrEmpty(t.Resolved),
		Labels:      t.Labels,
		Components:  t.Components,
		FixVersions: t.FixVersions,
		ParentKey:   t.ParentKey,
		EpicKey:     t.EpicKey,
		Subtasks:    t.Subtasks,
		Links:       t.Links,
		Comments:    t.Comments,
		Attachments: t.Attachments,
		URL:         t.URL,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Rendered{}, fmt.Errorf("failed to marshal ticket: %w", err)
	}
	return Rendered{Content: string(data) + "\n", Extension: ".json"}, nil
}
