// Package render turns a post body into a complete HTML page.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/addisoncox/addisoncox.github.io/internal/config"
	"github.com/addisoncox/addisoncox.github.io/internal/model"
)

// Renderer wraps converted Markdown in the site layout.
type Renderer struct {
	md     goldmark.Markdown
	layout config.Layout
}

// New returns a Renderer using layout for every page.
//
// Raw HTML in posts is passed through untouched so hand-written
// <pre class="lang"><code> blocks reach the highlighter.
func New(layout config.Layout) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
	return &Renderer{md: md, layout: layout}
}

// Markdown converts src to an HTML fragment.
func (r *Renderer) Markdown(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// Page renders doc and writes it to outPath, replacing any existing file.
func (r *Renderer) Page(doc *model.Document, data model.PageData, outPath string) error {
	body, err := r.Markdown(doc.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", doc.Path, err)
	}

	var page bytes.Buffer
	if err := r.layout.Header.Execute(&page, data); err != nil {
		return fmt.Errorf("failed to execute header template for %s: %w", doc.Path, err)
	}
	page.Write(body)
	if err := r.layout.Footer.Execute(&page, data); err != nil {
		return fmt.Errorf("failed to execute footer template for %s: %w", doc.Path, err)
	}

	if err := os.WriteFile(filepath.Clean(outPath), page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write page %s: %w", outPath, err)
	}
	return nil
}
