package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	t.Run("Missing file is not an error", func(t *testing.T) {
		doc, err := LoadDocument(filepath.Join(t.TempDir(), "absent.md"))
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("Loads and parses content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "PROJ-1-test.md")
		raw := "---\nkey: PROJ-1\n---\n# PROJ-1\n"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

		doc, err := LoadDocument(path)
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, raw, doc.Raw)
		assert.Equal(t, "# PROJ-1\n", doc.Body)
	})
}

func TestDocumentKey(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		raw      string
		expected string
	}{
		{
			name:     "Metadata key wins",
			path:     "renamed-note.md",
			raw:      "---\nkey: PROJ-42\n---\n",
			expected: "PROJ-42",
		},
		{
			name:     "Falls back to filename prefix",
			path:     "PROJ-7-fix-login.md",
			raw:      "no metadata here\n",
			expected: "PROJ-7",
		},
		{
			name:     "Bare key filename",
			path:     "ABC2-15.md",
			raw:      "",
			expected: "ABC2-15",
		},
		{
			name:     "No key anywhere uses the filename",
			path:     "scratch.md",
			raw:      "notes\n",
			expected: "scratch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument(tt.path, tt.raw)
			assert.Equal(t, tt.expected, doc.Key())
		})
	}
}
