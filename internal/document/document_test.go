package document

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"01/15/2024", "01/15/2024", true},
		{"  03/01/2024  \n", "03/01/2024", true},
		{"12/31/1999 trailing words", "12/31/1999", true},
		{"99/99/9999", "99/99/9999", true},
		{"1/15/2024", "", false},
		{"2024-01-15", "", false},
		{"# Title", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractDate(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.want, got, "line %q", tt.line)
	}
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Post.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDropsDateLine(t *testing.T) {
	doc, err := Read(writeDoc(t, "02/01/2024\n# Hi\n\nBody text.\n"), nil)
	require.NoError(t, err)

	assert.True(t, doc.HasDate)
	assert.Equal(t, "02/01/2024", doc.PublishDate)
	assert.Equal(t, "# Hi\n\nBody text.\n", string(doc.Body))
	assert.False(t, doc.Draft)
}

func TestReadDropsUndatedFirstLine(t *testing.T) {
	doc, err := Read(writeDoc(t, "Not a date\n# Hi\n"), nil)
	require.NoError(t, err)

	assert.False(t, doc.HasDate)
	assert.Empty(t, doc.PublishDate)
	assert.Equal(t, "# Hi\n", string(doc.Body))
}

func TestReadDateOnly(t *testing.T) {
	doc, err := Read(writeDoc(t, "02/01/2024"), nil)
	require.NoError(t, err)

	assert.True(t, doc.HasDate)
	assert.Empty(t, doc.Body)
}

func TestReadFrontmatter(t *testing.T) {
	doc, err := Read(writeDoc(t, "02/01/2024\n---\ndraft: true\nsummary: later\n---\n# Hi\n"), nil)
	require.NoError(t, err)

	assert.True(t, doc.Draft)
	assert.Equal(t, "later", doc.Frontmatter["summary"])
	assert.NotContains(t, string(doc.Body), "draft")
	assert.Contains(t, string(doc.Body), "# Hi")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.md"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadTOMLFrontmatter(t *testing.T) {
	doc, err := Read(writeDoc(t, "02/01/2024\n+++\ndraft = true\n+++\n# Hi\n"), nil)
	require.NoError(t, err)

	assert.True(t, doc.Draft)
	assert.Equal(t, "# Hi\n", string(doc.Body))
}

func TestReadThematicBreakIsNotFrontmatter(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	body := "---\nSome prose here.\n---\nMore.\n"
	doc, err := Read(writeDoc(t, "01/01/2024\n"+body), logger)
	require.NoError(t, err)

	assert.Equal(t, body, string(doc.Body))
	assert.False(t, doc.Draft)
	assert.Empty(t, doc.Frontmatter)
	assert.Contains(t, logs.String(), "could not parse front matter")
}

func TestReadKeepsBraceBody(t *testing.T) {
	body := "{\n  \"a\": 1\n}\n"
	doc, err := Read(writeDoc(t, "01/01/2024\n"+body), nil)
	require.NoError(t, err)

	assert.Equal(t, body, string(doc.Body))
	assert.Empty(t, doc.Frontmatter)
}
