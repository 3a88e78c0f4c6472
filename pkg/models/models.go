// Package models defines data structures shared across the application.
package models

import (
	"strings"
	"time"
)

// Ticket is the normalized, tracker-independent representation of a
// Jira issue. Free-text fields (Description, comment bodies) carry the
// tracker's native wiki markup; conversion to markdown happens at
// render time.
type Ticket struct {
	// Key is the full Jira issue identifier (e.g., "PROJ-123").
	// Never empty for a fetched ticket.
	Key string

	// Summary is the issue's title line
	Summary string

	// Description is the issue body in Jira wiki markup
	Description string

	Status    string
	Priority  string
	IssueType string
	Assignee  string
	Reporter  string

	// Created, Updated and Resolved are zero when the tracker did not
	// report them
	Created  time.Time
	Updated  time.Time
	Resolved time.Time

	Labels      []string
	Components  []string
	FixVersions []string

	// ParentKey and ParentSummary are set for subtasks
	ParentKey     string
	ParentSummary string

	// EpicKey and EpicName are set when the issue belongs to an epic
	EpicKey  string
	EpicName string

	// Subtasks holds the keys of child issues, in tracker order
	Subtasks []string

	Links       []IssueLink
	Comments    []Comment
	Attachments []Attachment

	// URL is the browse URL for this ticket on the tracker
	URL string
}

// IssueLink is a typed cross-reference between two tickets.
type IssueLink struct {
	// Direction is "outward" or "inward" relative to the owning ticket
	Direction string

	// Type is the link type name (e.g., "Blocks", "Relates")
	Type string

	// Key is the ticket on the other end of the link
	Key string

	// Summary is the linked ticket's title
	Summary string
}

// Comment is a single comment on a ticket. Body carries native markup.
type Comment struct {
	Author  string
	Body    string
	Created string
}

// Attachment is a file attached to a ticket.
type Attachment struct {
	Filename string
	URL      string
	Size     int64
}

// ParseTime parses a Jira timestamp like "2024-01-15T10:30:00.000+0000".
// The millisecond and zone suffix is dropped before parsing. Returns the
// zero time for empty or unparseable input.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// UpdatedISO returns the Updated timestamp as an ISO-8601 string, or ""
// when the ticket carries no update time. The diff engine compares this
// against the stored document's metadata.
func (t Ticket) UpdatedISO() string {
	if t.Updated.IsZero() {
		return ""
	}
	return t.Updated.Format("2006-01-02T15:04:05")
}
