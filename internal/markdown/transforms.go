package markdown

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/obsidianops/jira-vault/internal/markup"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// Metadata block output formats.
const (
	MetadataFrontmatter = "frontmatter"
	MetadataTable       = "table"
)

// Comment output formats.
const (
	CommentCallout = "callout"
	CommentQuote   = "quote"
	CommentHeading = "heading"
)

// TransformDescription converts a native-markup description to
// markdown. A positive maxLen truncates the result with an ellipsis
// that counts toward the limit; withHeader prepends a section header.
func TransformDescription(text string, maxLen int, withHeader bool) string {
	md := markup.ToMarkdown(text)
	if md == "" {
		return ""
	}
	if maxLen > 0 && len(md) > maxLen {
		cut := maxLen - 3
		if cut < 0 {
			cut = 0
		}
		for cut > 0 && !utf8.RuneStart(md[cut]) {
			cut--
		}
		md = md[:cut] + "..."
	}
	if withHeader {
		return "## Description\n\n" + md
	}
	return md
}

// MetadataFields assembles the ordered metadata block for a ticket.
// The synced stamp is appended by Build, not listed here.
func MetadataFields(t models.Ticket) Fields {
	fields := Fields{
		{Name: "key", Value: t.Key},
		{Name: "url", Value: t.URL},
		{Name: "status", Value: t.Status},
		{Name: "priority", Value: t.Priority},
		{Name: "type", Value: t.IssueType},
	}
	if t.Assignee != "" {
		fields = append(fields, Field{Name: "assignee", Value: t.Assignee})
	}
	if t.Reporter != "" {
		fields = append(fields, Field{Name: "reporter", Value: t.Reporter})
	}
	fields = append(fields,
		Field{Name: "created", Value: t.Created},
		Field{Name: "updated", Value: t.UpdatedISO()},
	)
	if t.ParentKey != "" {
		fields = append(fields, Field{Name: "parent", Value: t.ParentKey})
	}
	if t.EpicKey != "" {
		fields = append(fields, Field{Name: "epic", Value: t.EpicKey})
	}
	fields = append(fields, Field{Name: "labels", Value: t.Labels})
	return fields
}

// TransformMetadata renders ticket metadata either as a frontmatter
// block (default) or a two-column table. An unknown format is a caller
// configuration error.
func TransformMetadata(t models.Ticket, format string, now time.Time) (string, error) {
	switch format {
	case "", MetadataFrontmatter:
		return Build(MetadataFields(t), false, now), nil
	case MetadataTable:
		return metadataTable(t), nil
	default:
		return "", fmt.Errorf("unknown metadata format: %q", format)
	}
}

func metadataTable(t models.Ticket) string {
	var b strings.Builder
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	row := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "| **%s** | %s |\n", name, value)
		}
	}
	row("Key", fmt.Sprintf("[%s](%s)", t.Key, t.URL))
	row("Status", t.Status)
	row("Priority", t.Priority)
	row("Type", t.IssueType)
	row("Assignee", t.Assignee)
	row("Reporter", t.Reporter)
	if !t.Created.IsZero() {
		row("Created", t.Created.Format("2006-01-02"))
	}
	if !t.Updated.IsZero() {
		row("Updated", t.Updated.Format("2006-01-02"))
	}
	row("Components", strings.Join(t.Components, ", "))
	return b.String()
}

// TransformComment renders a single comment. The default callout form
// is collapsible; quote and heading forms are flat. An unknown format
// is a caller configuration error.
func TransformComment(c models.Comment, format string) (string, error) {
	body := markup.ToMarkdown(c.Body)
	title := c.Author
	if c.Created != "" {
		title += " - " + c.Created
	}
	switch format {
	case "", CommentCallout:
		return Callout("comment", title, body), nil
	case CommentQuote:
		var b strings.Builder
		b.WriteString("> **" + title + "**\n")
		for _, line := range strings.Split(body, "\n") {
			b.WriteString("> " + line + "\n")
		}
		return b.String(), nil
	case CommentHeading:
		return "### " + title + "\n\n" + body + "\n", nil
	default:
		return "", fmt.Errorf("unknown comment format: %q", format)
	}
}

// TransformComments renders an ordered comment list, optionally under
// a section header. An empty list renders nothing at all.
func TransformComments(comments []models.Comment, withHeader bool) string {
	if len(comments) == 0 {
		return ""
	}
	var b strings.Builder
	if withHeader {
		b.WriteString("## Comments\n\n")
	}
	for _, c := range comments {
		rendered, _ := TransformComment(c, CommentCallout)
		b.WriteString(rendered)
		b.WriteString("\n")
	}
	return b.String()
}
