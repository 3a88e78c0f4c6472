package vault

import (
	"github.com/obsidianops/jira-vault/pkg/models"
)

// FieldNew is the sentinel change entry for a ticket with no local
// document yet.
const FieldNew = "new"

// comparedFields are the metadata fields diffed against the remote
// record, in report order. Description content is not diffed directly;
// the updated timestamp stands proxy for it.
var comparedFields = []struct {
	name   string
	remote func(models.Ticket) string
}{
	{"status", func(t models.Ticket) string { return t.Status }},
	{"priority", func(t models.Ticket) string { return t.Priority }},
	{"assignee", func(t models.Ticket) string { return t.Assignee }},
	{"updated", func(t models.Ticket) string { return t.UpdatedISO() }},
}

// ChangeReport is the outcome of comparing a local document against a
// remote ticket. Local is nil when the ticket has never been synced,
// in which case Changed is true and Fields holds only FieldNew.
type ChangeReport struct {
	Changed bool
	Local   *Document
	Remote  models.Ticket
	Fields  []string
}

// Compare diffs a stored document against the remote record. A missing
// local field counts as a mismatch; comparison is exact string
// equality. The caller guarantees remote carries a non-empty key.
func Compare(local *Document, remote models.Ticket) ChangeReport {
	if local == nil {
		return ChangeReport{
			Changed: true,
			Remote:  remote,
			Fields:  []string{FieldNew},
		}
	}

	report := ChangeReport{Local: local, Remote: remote}
	for _, cf := range comparedFields {
		stored, ok := local.Fields.GetString(cf.name)
		if !ok || stored != cf.remote(remote) {
			report.Fields = append(report.Fields, cf.name)
		}
	}
	report.Changed = len(report.Fields) > 0
	return report
}
