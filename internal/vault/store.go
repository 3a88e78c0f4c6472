package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/obsidianops/jira-vault/internal/logging"
	"github.com/obsidianops/jira-vault/internal/markdown"
	"github.com/obsidianops/jira-vault/pkg/models"
)

// MaxFilenameLength caps the sanitized summary part of a filename.
const MaxFilenameLength = 50

// maxCategoryLength caps sanitized category directory names.
const maxCategoryLength = 30

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	separators  = regexp.MustCompile(`[+\s]+`)
	syncedLine  = regexp.MustCompile(`(?m)^` + markdown.SyncedField + `:.*\n?`)
)

// SanitizeName makes a string safe for use as a file or directory
// name: filesystem-unsafe characters are stripped, runs of '+' and
// whitespace collapse to a single hyphen, and the result is capped at
// maxLen with no leading or trailing hyphen.
func SanitizeName(name string, maxLen int, lowercase bool) string {
	s := unsafeChars.ReplaceAllString(name, "")
	s = separators.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if maxLen > 0 && len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.Trim(s[:cut], "-")
	}
	if lowercase {
		s = strings.ToLower(s)
	}
	return s
}

// Store writes rendered ticket documents under a vault root.
type Store struct {
	Root string
}

// NewStore returns a store rooted at the given vault directory. A
// leading ~ expands to the user home directory.
func NewStore(root string) *Store {
	if strings.HasPrefix(root, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	return &Store{Root: root}
}

// Filename returns the vault filename for a ticket: the key plus a
// sanitized summary when one is present.
func Filename(t models.Ticket, ext string) string {
	if t.Summary == "" {
		return t.Key + ext
	}
	return t.Key + "-" + SanitizeName(t.Summary, MaxFilenameLength, true) + ext
}

// Write stores rendered content for a ticket, creating the target
// directory as needed. When the target already exists and force is
// false the new content is compared against the current one with every
// synced-timestamp line stripped from both sides; if equal the write
// is skipped and the returned path is empty. Filesystem errors
// propagate to the caller.
func (s *Store) Write(t models.Ticket, content, ext, category string, force bool) (string, error) {
	dir := s.Root
	if category != "" {
		dir = filepath.Join(dir, SanitizeName(category, maxCategoryLength, false))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create vault directory: %w", err)
	}

	path := filepath.Join(dir, Filename(t, ext))

	if !force {
		existing, err := os.ReadFile(path)
		if err == nil && stripSynced(string(existing)) == stripSynced(content) {
			logging.Debug("document unchanged, skipping write",
				"ticket", t.Key,
				"path", path)
			return "", nil
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

// WriteRaw stores arbitrary content under the vault root, bypassing
// the unchanged-skip comparison. Used for index documents.
func (s *Store) WriteRaw(category, name, content string) (string, error) {
	dir := s.Root
	if category != "" {
		dir = filepath.Join(dir, SanitizeName(category, maxCategoryLength, false))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create vault directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

// Read returns the raw content at path, or empty with no error when
// the file does not exist.
func (s *Store) Read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// FindExistingFile searches the vault for the first markdown file
// whose name starts with the ticket key. Traversal is lexicographic,
// so the result is deterministic across runs. Returns empty when no
// document exists.
func (s *Store) FindExistingFile(key string) string {
	var found string
	filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" {
			return fs.SkipAll
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != s.Root {
				return fs.SkipDir
			}
			return nil
		}
		// A bare prefix match would let PROJ-1 claim PROJ-12's file,
		// so the key must be followed by the summary separator or the
		// extension.
		if d.Name() == key+Extension ||
			(strings.HasPrefix(d.Name(), key+"-") && strings.HasSuffix(d.Name(), Extension)) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// LoadExisting loads the stored document for a ticket key, searching
// the whole vault. Returns nil when the ticket has never been synced.
func (s *Store) LoadExisting(key string) (*Document, error) {
	path := s.FindExistingFile(key)
	if path == "" {
		return nil, nil
	}
	return LoadDocument(path)
}

func stripSynced(content string) string {
	return syncedLine.ReplaceAllString(content, "")
}
