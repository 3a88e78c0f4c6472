// Package sync orchestrates mirroring tickets from the tracker into
// the local vault: fetch, render, diff, persist.
package sync

import (
	"fmt"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/logging"
	"github.com/obsidianops/jira-vault/internal/render"
	"github.com/obsidianops/jira-vault/internal/vault"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// TicketSource is the slice of the tracker client the syncer needs.
type TicketSource interface {
	GetTicket(key string) (models.Ticket, error)
	SearchTickets(jql string) ([]models.Ticket, error)
	EpicTickets(epicKey string) ([]models.Ticket, error)
	ProjectTickets(projectKey, status, issueType string) ([]models.Ticket, error)
}

// Result aggregates the outcome of a sync operation. A batch keeps
// going past per-ticket failures; those land in Errors.
type Result struct {
	Synced  int
	Created []string
	Updated []string
	Skipped []string
	Errors  []string
}

func (r *Result) merge(other Result) {
	r.Synced += other.Synced
	r.Created = append(r.Created, other.Created...)
	r.Updated = append(r.Updated, other.Updated...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Errors = append(r.Errors, other.Errors...)
}

// Syncer mirrors tickets into a vault store. The tracker connection is
// owned by the caller and passed in, never cached globally.
type Syncer struct {
	source TicketSource
	store  *vault.Store
	cfg    *config.Config
	format render.Format
}

// NewSyncer assembles a syncer. An empty format defaults to the
// richly-linked vault format.
func NewSyncer(source TicketSource, store *vault.Store, cfg *config.Config, format render.Format) *Syncer {
	if format == "" {
		format = render.FormatObsidian
	}
	return &Syncer{source: source, store: store, cfg: cfg, format: format}
}

// SyncTicket mirrors a single ticket. An empty category is detected
// from the ticket's parent, epic or type; force rewrites the document
// even when unchanged.
func (s *Syncer) SyncTicket(key, category string, force bool) (Result, error) {
	ticket, err := s.source.GetTicket(key)
	if err != nil {
		return Result{}, err
	}
	return s.syncOne(ticket, category, force)
}

// SyncTickets mirrors multiple tickets by key. A failure on one ticket
// does not stop the rest; it is recorded in the result.
func (s *Syncer) SyncTickets(keys []string, category string, force bool) Result {
	var result Result
	for _, key := range keys {
		one, err := s.SyncTicket(key, category, force)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			logging.Warn("ticket sync failed", "ticket", key, "error", err)
			continue
		}
		result.merge(one)
	}
	return result
}

// SyncEpic mirrors every ticket in an epic, optionally into a folder
// named after the epic with an index document.
func (s *Syncer) SyncEpic(epicKey string, createFolder, createIndex bool) (Result, error) {
	epic, err := s.source.GetTicket(epicKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch epic %s: %w", epicKey, err)
	}

	tickets, err := s.source.EpicTickets(epicKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch tickets of epic %s: %w", epicKey, err)
	}

	category := ""
	if createFolder {
		category = vault.SanitizeName(epicKey+" "+epic.Summary, 30, false)
	}

	result := s.syncBatch(tickets, category, false)

	epicResult, err := s.syncOne(epic, category, false)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", epicKey, err))
	} else {
		result.merge(epicResult)
	}

	if createIndex {
		title := fmt.Sprintf("%s: %s", epicKey, epic.Summary)
		if err := s.writeIndex(epicKey+"-index", title, category, tickets); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("index: %v", err))
		}
	}
	return result, nil
}

// SyncJQL mirrors every ticket matching a JQL query.
func (s *Syncer) SyncJQL(jql, category string, createIndex bool, indexName string) (Result, error) {
	tickets, err := s.source.SearchTickets(jql)
	if err != nil {
		return Result{}, fmt.Errorf("jql search failed: %w", err)
	}

	result := s.syncBatch(tickets, category, false)

	if createIndex && len(tickets) > 0 {
		if indexName == "" {
			indexName = "query-index"
		}
		if err := s.writeIndex(indexName, "Query Results", category, tickets); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("index: %v", err))
		}
	}
	return result, nil
}

// SyncProject mirrors tickets from a project with optional status and
// type filters.
func (s *Syncer) SyncProject(projectKey, status, issueType string, createIndex bool) (Result, error) {
	tickets, err := s.source.ProjectTickets(projectKey, status, issueType)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch project %s: %w", projectKey, err)
	}

	result := s.syncBatch(tickets, "", false)

	if createIndex && len(tickets) > 0 {
		if err := s.writeIndex(projectKey+"-index", projectKey+" Tickets", "", tickets); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("index: %v", err))
		}
	}
	return result, nil
}

// syncBatch processes tickets sequentially, one fully before the next.
func (s *Syncer) syncBatch(tickets []models.Ticket, category string, force bool) Result {
	var result Result
	for _, ticket := range tickets {
		one, err := s.syncOne(ticket, category, force)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", ticket.Key, err))
			logging.Warn("ticket sync failed", "ticket", ticket.Key, "error", err)
			continue
		}
		result.merge(one)
	}
	return result
}

// syncOne renders, diffs and persists a single fetched ticket.
func (s *Syncer) syncOne(ticket models.Ticket, category string, force bool) (Result, error) {
	local, err := s.store.LoadExisting(ticket.Key)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load local document: %w", err)
	}

	report := vault.Compare(local, ticket)
	if !report.Changed && !force {
		logging.Debug("ticket unchanged", "ticket", ticket.Key)
		return Result{Synced: 1, Skipped: []string{ticket.Key}}, nil
	}

	if category == "" {
		category = render.DetectCategory(ticket)
	}

	rendered, err := render.Ticket(ticket, s.format, s.cfg)
	if err != nil {
		return Result{}, err
	}

	path, err := s.store.Write(ticket, rendered.Content, rendered.Extension, category, force)
	if err != nil {
		return Result{}, err
	}

	result := Result{Synced: 1}
	switch {
	case path == "":
		result.Skipped = append(result.Skipped, ticket.Key)
	case local == nil:
		result.Created = append(result.Created, path)
		logging.Info("document created", "ticket", ticket.Key, "path", path, "fields", report.Fields)
	default:
		result.Updated = append(result.Updated, path)
		logging.Info("document updated", "ticket", ticket.Key, "path", path, "fields", report.Fields)
	}
	return result, nil
}

func (s *Syncer) writeIndex(name, title, category string, tickets []models.Ticket) error {
	content := render.Index(tickets, title, true, true)
	_, err := s.store.WriteRaw(category, name+vault.Extension, content)
	return err
}
