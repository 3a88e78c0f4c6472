package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/obsidianops/jira-vault/internal/vault"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// maxQuickLinks caps the quick-links section of an index document.
const maxQuickLinks = 5

// DetectCategory picks the vault subdirectory for a ticket: the parent
// ticket's summary when there is one, else the epic name, else the
// issue type.
func DetectCategory(t models.Ticket) string {
	if t.ParentSummary != "" {
		return vault.SanitizeName(t.ParentSummary, 30, false)
	}
	if t.EpicName != "" {
		return vault.SanitizeName(t.EpicName, 30, false)
	}
	if t.IssueType != "" {
		return vault.SanitizeName(t.IssueType, 30, false)
	}
	return "General"
}

// Index renders a summary document for a batch of synced tickets:
// aggregate counts, a ticket table, category groupings and quick
// links.
func Index(tickets []models.Ticket, title string, includeTable, includeCategories bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Summary\n")
	fmt.Fprintf(&b, "- **Total tickets:** %d\n", len(tickets))
	if len(tickets) > 0 {
		if statuses := distinct(tickets, func(t models.Ticket) string { return t.Status }); len(statuses) > 0 {
			fmt.Fprintf(&b, "- **Statuses:** %s\n", strings.Join(statuses, ", "))
		}
		if priorities := distinct(tickets, func(t models.Ticket) string { return t.Priority }); len(priorities) > 0 {
			fmt.Fprintf(&b, "- **Priorities:** %s\n", strings.Join(priorities, ", "))
		}
		if types := distinct(tickets, func(t models.Ticket) string { return t.IssueType }); len(types) > 0 {
			fmt.Fprintf(&b, "- **Types:** %s\n", strings.Join(types, ", "))
		}
	}
	b.WriteString("\n")

	if includeTable && len(tickets) > 0 {
		b.WriteString("## Ticket List\n\n")
		b.WriteString("| Key | Summary | Status | Priority | Type |\n")
		b.WriteString("|-----|---------|--------|----------|------|\n")
		for _, t := range tickets {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				t.Key, t.Summary, t.Status, t.Priority, t.IssueType)
		}
		b.WriteString("\n")
	}

	if includeCategories && len(tickets) > 0 {
		b.WriteString(categorySections(tickets))
	}

	if len(tickets) > 0 {
		b.WriteString("## Quick Links\n\n")
		for i, t := range tickets {
			if i == maxQuickLinks {
				break
			}
			fmt.Fprintf(&b, "- [[%s]] - %s\n", t.Key, t.Summary)
		}
	}

	return b.String()
}

func categorySections(tickets []models.Ticket) string {
	grouped := make(map[string][]models.Ticket)
	for _, t := range tickets {
		category := DetectCategory(t)
		grouped[category] = append(grouped[category], t)
	}

	categories := make([]string, 0, len(grouped))
	for category := range grouped {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("## By Category\n\n")
	for _, category := range categories {
		fmt.Fprintf(&b, "### %s\n", category)
		for _, t := range grouped[category] {
			fmt.Fprintf(&b, "- %s - %s\n", t.Key, t.Summary)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// distinct collects the sorted unique non-empty values of one field.
func distinct(tickets []models.Ticket, field func(models.Ticket) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, t := range tickets {
		v := field(t)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}
