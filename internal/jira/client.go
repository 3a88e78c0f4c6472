// Package jira wraps the tracker API behind a small client that speaks
// the application's normalized ticket model. The client is a plain
// value owned by its caller; there is no process-wide connection cache.
package jira

import (
	"fmt"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/logging"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// searchPageSize is the batch size for paginated JQL searches.
const searchPageSize = 50

// epicLinkFields are the custom field names that may carry the epic
// link, probed in order. The exact field varies by Jira instance.
var epicLinkFields = []string{"customfield_10014", "customfield_10008"}

// Client handles interactions with the Jira API.
type Client struct {
	client  *jira.Client
	baseURL string
}

// NewClient creates a Jira client from the given configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	client, err := jira.NewClient(tp.Client(), cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira client initialized",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.Jira.URL, "/"),
	}, nil
}

// BrowseURL returns the web URL for a ticket key.
func (c *Client) BrowseURL(key string) string {
	return c.baseURL + "/browse/" + key
}

// GetTicket fetches a single ticket by key. The parent's summary is
// resolved with a second request when the ticket has one: the API's
// parent stanza carries only the key, and the summary feeds both the
// related-tickets section and category detection.
func (c *Client) GetTicket(key string) (models.Ticket, error) {
	issue, _, err := c.client.Issue.Get(key, &jira.GetQueryOptions{Expand: "changelog"})
	if err != nil {
		return models.Ticket{}, fmt.Errorf("failed to fetch ticket %s: %w", key, err)
	}

	ticket := c.issueToTicket(issue)
	if ticket.ParentKey != "" && ticket.ParentSummary == "" {
		parent, _, err := c.client.Issue.Get(ticket.ParentKey, &jira.GetQueryOptions{Fields: "summary"})
		if err == nil && parent.Fields != nil {
			ticket.ParentSummary = parent.Fields.Summary
		} else {
			logging.Debug("parent summary lookup failed", "ticket", key, "parent", ticket.ParentKey)
		}
	}
	return ticket, nil
}

// SearchTickets returns all tickets matching a JQL query, following
// pagination until the result set is exhausted.
func (c *Client) SearchTickets(jql string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	startAt := 0

	for {
		issues, _, err := c.client.Issue.Search(jql, &jira.SearchOptions{
			MaxResults: searchPageSize,
			StartAt:    startAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search jira issues: %w", err)
		}
		if len(issues) == 0 {
			break
		}

		for i := range issues {
			tickets = append(tickets, c.issueToTicket(&issues[i]))
		}
		startAt += len(issues)

		if len(issues) < searchPageSize {
			break
		}
	}

	logging.Debug("jql search complete", "jql", jql, "count", len(tickets))
	return tickets, nil
}

// EpicTickets returns all tickets belonging to an epic, covering both
// classic epic links and next-gen parent relations.
func (c *Client) EpicTickets(epicKey string) ([]models.Ticket, error) {
	jql := fmt.Sprintf(`"Epic Link" = %s OR parent = %s`, epicKey, epicKey)
	return c.SearchTickets(jql)
}

// ProjectTickets returns tickets from a project with optional status
// and issue type filters.
func (c *Client) ProjectTickets(projectKey, status, issueType string) ([]models.Ticket, error) {
	parts := []string{fmt.Sprintf("project = %s", projectKey)}
	if status != "" {
		parts = append(parts, fmt.Sprintf("status = %q", status))
	}
	if issueType != "" {
		parts = append(parts, fmt.Sprintf("issuetype = %q", issueType))
	}
	jql := strings.Join(parts, " AND ") + " ORDER BY created DESC"
	return c.SearchTickets(jql)
}

// AddComment posts a comment to a ticket. Body is native wiki markup.
func (c *Client) AddComment(key, body string) error {
	_, _, err := c.client.Issue.AddComment(key, &jira.Comment{Body: body})
	if err != nil {
		return fmt.Errorf("failed to add comment to %s: %w", key, err)
	}
	return nil
}

// Transitions returns the available status transitions for a ticket.
func (c *Client) Transitions(key string) ([]jira.Transition, error) {
	transitions, _, err := c.client.Issue.GetTransitions(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get transitions for %s: %w", key, err)
	}
	return transitions, nil
}

// UpdateStatus transitions a ticket to a new status. The target may be
// a transition name, a transition ID, the destination status name, or
// a suffix of the transition name ("Ready" matches "Open to Ready").
func (c *Client) UpdateStatus(key, status string) error {
	transitions, err := c.Transitions(key)
	if err != nil {
		return err
	}

	transitionID := matchTransition(transitions, status)
	if transitionID == "" {
		available := make([]string, 0, len(transitions))
		for _, t := range transitions {
			available = append(available, t.Name)
		}
		return fmt.Errorf("status %q not available for %s, options: %v", status, key, available)
	}

	if _, err := c.client.Issue.DoTransition(key, transitionID); err != nil {
		return fmt.Errorf("failed to transition %s: %w", key, err)
	}
	return nil
}

// matchTransition resolves a requested status against the available
// transitions, returning the transition ID or "" when nothing matches.
func matchTransition(transitions []jira.Transition, status string) string {
	target := strings.ToLower(status)
	for _, t := range transitions {
		name := strings.ToLower(t.Name)
		to := strings.ToLower(t.To.Name)
		if name == target || t.ID == status || to == target ||
			strings.HasSuffix(name, target) || strings.HasSuffix(name, "to "+target) {
			return t.ID
		}
	}
	return ""
}

// UpdateDescription replaces a ticket's description. The body is
// native wiki markup; callers converting from markdown go through
// markup.ToNative first.
func (c *Client) UpdateDescription(key, description string) error {
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"description": description,
		},
	}
	if _, err := c.client.Issue.UpdateIssue(key, payload); err != nil {
		return fmt.Errorf("failed to update description of %s: %w", key, err)
	}
	return nil
}

// LinkTickets creates a typed link between two tickets.
func (c *Client) LinkTickets(fromKey, toKey, linkType string) error {
	link := &jira.IssueLink{
		Type:         jira.IssueLinkType{Name: linkType},
		InwardIssue:  &jira.Issue{Key: toKey},
		OutwardIssue: &jira.Issue{Key: fromKey},
	}
	if _, err := c.client.Issue.AddLink(link); err != nil {
		return fmt.Errorf("failed to link %s to %s: %w", fromKey, toKey, err)
	}
	return nil
}

// issueToTicket converts a raw API issue into the normalized model.
func (c *Client) issueToTicket(issue *jira.Issue) models.Ticket {
	fields := issue.Fields

	ticket := models.Ticket{
		Key:         issue.Key,
		Summary:     fields.Summary,
		Description: fields.Description,
		IssueType:   fields.Type.Name,
		Labels:      fields.Labels,
		Created:     time.Time(fields.Created),
		Updated:     time.Time(fields.Updated),
		Resolved:    time.Time(fields.Resolutiondate),
		URL:         c.BrowseURL(issue.Key),
	}

	if fields.Status != nil {
		ticket.Status = fields.Status.Name
	}
	if fields.Priority != nil {
		ticket.Priority = fields.Priority.Name
	}
	if fields.Assignee != nil {
		ticket.Assignee = fields.Assignee.DisplayName
	}
	if fields.Reporter != nil {
		ticket.Reporter = fields.Reporter.DisplayName
	}

	for _, component := range fields.Components {
		ticket.Components = append(ticket.Components, component.Name)
	}
	for _, version := range fields.FixVersions {
		ticket.FixVersions = append(ticket.FixVersions, version.Name)
	}

	if fields.Parent != nil {
		ticket.ParentKey = fields.Parent.Key
	}
	ticket.EpicKey = epicLink(fields)
	if ticket.EpicKey == "" && fields.Parent != nil {
		ticket.EpicKey = fields.Parent.Key
	}
	if fields.Epic != nil {
		ticket.EpicName = fields.Epic.Name
		if ticket.EpicKey == "" {
			ticket.EpicKey = fields.Epic.Key
		}
	}

	for _, subtask := range fields.Subtasks {
		ticket.Subtasks = append(ticket.Subtasks, subtask.Key)
	}

	for _, link := range fields.IssueLinks {
		converted := models.IssueLink{Type: link.Type.Name}
		switch {
		case link.OutwardIssue != nil:
			converted.Direction = "outward"
			converted.Key = link.OutwardIssue.Key
			if link.OutwardIssue.Fields != nil {
				converted.Summary = link.OutwardIssue.Fields.Summary
			}
		case link.InwardIssue != nil:
			converted.Direction = "inward"
			converted.Key = link.InwardIssue.Key
			if link.InwardIssue.Fields != nil {
				converted.Summary = link.InwardIssue.Fields.Summary
			}
		default:
			continue
		}
		ticket.Links = append(ticket.Links, converted)
	}

	if fields.Comments != nil {
		for _, comment := range fields.Comments.Comments {
			ticket.Comments = append(ticket.Comments, models.Comment{
				Author:  comment.Author.DisplayName,
				Body:    comment.Body,
				Created: comment.Created,
			})
		}
	}

	for _, att := range fields.Attachments {
		ticket.Attachments = append(ticket.Attachments, models.Attachment{
			Filename: att.Filename,
			URL:      att.Content,
			Size:     int64(att.Size),
		})
	}

	return ticket
}

// epicLink probes the custom fields that commonly carry the epic key.
func epicLink(fields *jira.IssueFields) string {
	for _, name := range epicLinkFields {
		if value, err := fields.Unknowns.String(name); err == nil && value != "" {
			return value
		}
	}
	return ""
}
