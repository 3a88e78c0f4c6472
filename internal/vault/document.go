// Package vault stores rendered ticket documents in a local directory
// tree and decides, per ticket, whether a stored document still
// matches the remote record.
package vault

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/obsidianops/jira-vault/internal/markdown"
)

// Extension is the file extension for vault documents.
const Extension = ".md"

var keyPattern = regexp.MustCompile(`^([A-Z][A-Z0-9]*-\d+)`)

// Document is a ticket document as stored in the vault: the raw file
// content split into its parsed metadata block and remaining body.
// Instances are built fresh on every read and never mutated.
type Document struct {
	Path   string
	Raw    string
	Fields markdown.Fields
	Body   string
}

// LoadDocument reads and parses the document at path. A missing file
// is not an error: it returns nil, nil, meaning the ticket has never
// been synced.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseDocument(path, string(raw)), nil
}

// ParseDocument builds a Document from already-read file content.
func ParseDocument(path, raw string) *Document {
	fields, body := markdown.Parse(raw)
	return &Document{
		Path:   path,
		Raw:    raw,
		Fields: fields,
		Body:   body,
	}
}

// Key returns the ticket key this document mirrors: the metadata
// block's key field when present, else the leading key-shaped prefix
// of the filename.
func (d *Document) Key() string {
	if key, ok := d.Fields.GetString("key"); ok && key != "" {
		return key
	}
	name := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
	if m := keyPattern.FindString(name); m != "" {
		return m
	}
	return name
}
