package sync

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obsidianops/jira-vault/internal/config"
	"github.com/obsidianops/jira-vault/internal/render"
	"github.com/obsidianops/jira-vault/internal/vault"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// mockSource implements TicketSource with overridable behavior.
type mockSource struct {
	getTicketFunc      func(key string) (models.Ticket, error)
	searchTicketsFunc  func(jql string) ([]models.Ticket, error)
	epicTicketsFunc    func(epicKey string) ([]models.Ticket, error)
	projectTicketsFunc func(projectKey, status, issueType string) ([]models.Ticket, error)
}

func (m *mockSource) GetTicket(key string) (models.Ticket, error) {
	if m.getTicketFunc != nil {
		return m.getTicketFunc(key)
	}
	return models.Ticket{}, errors.New("not implemented")
}

func (m *mockSource) SearchTickets(jql string) ([]models.Ticket, error) {
	if m.searchTicketsFunc != nil {
		return m.searchTicketsFunc(jql)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSource) EpicTickets(epicKey string) ([]models.Ticket, error) {
	if m.epicTicketsFunc != nil {
		return m.epicTicketsFunc(epicKey)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSource) ProjectTickets(projectKey, status, issueType string) ([]models.Ticket, error) {
	if m.projectTicketsFunc != nil {
		return m.projectTicketsFunc(projectKey, status, issueType)
	}
	return nil, errors.New("not implemented")
}

func testConfig() *config.Config {
	return &config.Config{
		IncludeComments:    true,
		IncludeAttachments: true,
		IncludeLinks:       true,
	}
}

func testTicket(key string) models.Ticket {
	return models.Ticket{
		Key:       key,
		Summary:   "Fix login timeout",
		Status:    "In Progress",
		Priority:  "High",
		IssueType: "Bug",
		Assignee:  "Dana Developer",
		Updated:   time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC),
		URL:       "https://jira.example.com/browse/" + key,
	}
}

func newTestSyncer(t *testing.T, source TicketSource) *Syncer {
	t.Helper()
	return NewSyncer(source, vault.NewStore(t.TempDir()), testConfig(), render.FormatObsidian)
}

func TestSyncTicketCreates(t *testing.T) {
	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			return testTicket(key), nil
		},
	}
	syncer := newTestSyncer(t, source)

	result, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Synced)
	require.Len(t, result.Created, 1)
	assert.Empty(t, result.Updated)
	assert.Empty(t, result.Errors)

	// No explicit category, so the issue type decides the folder.
	assert.Equal(t, filepath.Join(syncer.store.Root, "Bug"), filepath.Dir(result.Created[0]))

	raw, err := os.ReadFile(result.Created[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "key: PROJ-1")
}

func TestSyncTicketUnchangedSkips(t *testing.T) {
	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			return testTicket(key), nil
		},
	}
	syncer := newTestSyncer(t, source)

	first, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	second, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Synced)
	assert.Equal(t, []string{"PROJ-1"}, second.Skipped)
	assert.Empty(t, second.Created)
	assert.Empty(t, second.Updated)
}

func TestSyncTicketRemoteChangeUpdates(t *testing.T) {
	ticket := testTicket("PROJ-1")
	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			return ticket, nil
		},
	}
	syncer := newTestSyncer(t, source)

	_, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)

	ticket.Status = "Done"
	ticket.Updated = ticket.Updated.Add(time.Hour)

	result, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)
	require.Len(t, result.Updated, 1)
	assert.Empty(t, result.Created)

	raw, err := os.ReadFile(result.Updated[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "status: Done")
}

func TestSyncTicketForceRewrites(t *testing.T) {
	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			return testTicket(key), nil
		},
	}
	syncer := newTestSyncer(t, source)

	_, err := syncer.SyncTicket("PROJ-1", "", false)
	require.NoError(t, err)

	result, err := syncer.SyncTicket("PROJ-1", "", true)
	require.NoError(t, err)
	assert.Len(t, result.Updated, 1)
	assert.Empty(t, result.Skipped)
}

func TestSyncTicketsContinuesPastFailures(t *testing.T) {
	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			if key == "BAD-1" {
				return models.Ticket{}, errors.New("issue does not exist")
			}
			return testTicket(key), nil
		},
	}
	syncer := newTestSyncer(t, source)

	result := syncer.SyncTickets([]string{"PROJ-1", "BAD-1", "PROJ-2"}, "", false)

	assert.Equal(t, 2, result.Synced)
	assert.Len(t, result.Created, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "BAD-1")
}

func TestSyncEpic(t *testing.T) {
	epic := testTicket("PROJ-7")
	epic.Summary = "Payments"
	epic.IssueType = "Epic"

	source := &mockSource{
		getTicketFunc: func(key string) (models.Ticket, error) {
			require.Equal(t, "PROJ-7", key)
			return epic, nil
		},
		epicTicketsFunc: func(epicKey string) ([]models.Ticket, error) {
			return []models.Ticket{testTicket("PROJ-8"), testTicket("PROJ-9")}, nil
		},
	}
	syncer := newTestSyncer(t, source)

	result, err := syncer.SyncEpic("PROJ-7", true, true)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Synced)
	assert.Len(t, result.Created, 3)
	assert.Empty(t, result.Errors)

	folder := filepath.Join(syncer.store.Root, "PROJ-7-Payments")
	for _, path := range result.Created {
		assert.Equal(t, folder, filepath.Dir(path))
	}

	index, err := os.ReadFile(filepath.Join(folder, "PROJ-7-index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# PROJ-7: Payments")
	assert.Contains(t, string(index), "- **Total tickets:** 2")
}

func TestSyncJQL(t *testing.T) {
	source := &mockSource{
		searchTicketsFunc: func(jql string) ([]models.Ticket, error) {
			assert.Equal(t, "assignee = currentUser()", jql)
			return []models.Ticket{testTicket("PROJ-1")}, nil
		},
	}
	syncer := newTestSyncer(t, source)

	result, err := syncer.SyncJQL("assignee = currentUser()", "inbox", true, "")
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)

	index, err := os.ReadFile(filepath.Join(syncer.store.Root, "inbox", "query-index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# Query Results")
}

func TestSyncProject(t *testing.T) {
	source := &mockSource{
		projectTicketsFunc: func(projectKey, status, issueType string) ([]models.Ticket, error) {
			assert.Equal(t, "PROJ", projectKey)
			assert.Equal(t, "Done", status)
			assert.Equal(t, "", issueType)
			return []models.Ticket{testTicket("PROJ-1"), testTicket("PROJ-2")}, nil
		},
	}
	syncer := newTestSyncer(t, source)

	result, err := syncer.SyncProject("PROJ", "Done", "", true)
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)

	index, err := os.ReadFile(filepath.Join(syncer.store.Root, "PROJ-index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# PROJ Tickets")
}

func TestSyncJQLNoResults(t *testing.T) {
	source := &mockSource{
		searchTicketsFunc: func(jql string) ([]models.Ticket, error) {
			return nil, nil
		},
	}
	syncer := newTestSyncer(t, source)

	result, err := syncer.SyncJQL("project = EMPTY", "", true, "")
	require.NoError(t, err)
	assert.Zero(t, result.Synced)

	_, statErr := os.Stat(filepath.Join(syncer.store.Root, "query-index.md"))
	assert.True(t, os.IsNotExist(statErr))
}
