package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisoncox/addisoncox.github.io/internal/config"
	"github.com/addisoncox/addisoncox.github.io/internal/model"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	layout, err := config.Default().LoadLayout()
	require.NoError(t, err)
	return New(layout)
}

func defaultData() model.PageData {
	cfg := config.Default()
	return model.PageData{SiteTitle: cfg.SiteTitle, StylesheetHref: cfg.StylesheetHref}
}

func TestPageWrapsBodyInLayout(t *testing.T) {
	r := newRenderer(t)
	out := filepath.Join(t.TempDir(), "hi.html")

	doc := &model.Document{Path: "hi.md", Body: []byte("# Hi")}
	require.NoError(t, r.Page(doc, defaultData(), out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(got)

	assert.Contains(t, page, "<h1>Hi</h1>")
	assert.True(t, strings.HasPrefix(page, "\n<!DOCTYPE html>\n"), "page starts with header")
	assert.Contains(t, page, `<link rel="stylesheet" href="./../styles.css"/>`)
	assert.True(t, strings.HasSuffix(page, config.DefaultFooter), "page ends with footer")

	header := page[:strings.Index(page, "<h1>")]
	assert.True(t, strings.HasSuffix(header, "<div class=\"container\">\n"))
}

func TestPageOverwrites(t *testing.T) {
	r := newRenderer(t)
	out := filepath.Join(t.TempDir(), "p.html")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))

	require.NoError(t, r.Page(&model.Document{Body: []byte("fresh")}, defaultData(), out))
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(got), "stale")
	assert.Contains(t, string(got), "<p>fresh</p>")
}

func TestMarkdownKeepsRawCodeBlocks(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Markdown([]byte("Intro\n\n<pre class=\"python\"><code>def f(): pass</code></pre>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `<pre class="python"><code>def f(): pass</code></pre>`)
}

func TestMarkdownFencedCode(t *testing.T) {
	r := newRenderer(t)
	got, err := r.Markdown([]byte("```go\nfunc main() {}\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `<pre><code class="language-go">`)
}

func TestPageUnwritableOutput(t *testing.T) {
	r := newRenderer(t)
	out := filepath.Join(t.TempDir(), "missing", "p.html")
	err := r.Page(&model.Document{Body: []byte("x")}, defaultData(), out)
	require.Error(t, err)
}
