// Package highlight colors the code blocks of rendered pages.
package highlight

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/addisoncox/addisoncox.github.io/internal/htmlnode"
)

// ErrNoLanguage is returned for a code block that names no language.
var ErrNoLanguage = errors.New("code block has no language class")

// UnknownLanguageError is returned when no lexer matches a block's
// language name.
type UnknownLanguageError struct {
	Language string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("no lexer for language %q", e.Language)
}

// Highlighter renders source code as class-annotated HTML spans.
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// New returns a Highlighter. styleName only affects WriteCSS; unknown
// names are logged and fall back to chroma's default style. A nil logger
// uses slog.Default.
func New(styleName string, logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = slog.Default()
	}
	if _, ok := styles.Registry[styleName]; !ok && styleName != "" {
		logger.Warn("unknown highlight style, using default", "style", styleName, "default", styles.Fallback.Name)
	}
	return &Highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Get(styleName),
	}
}

// Highlight returns code colored for language. Leading and trailing
// whitespace is stripped first.
func (h *Highlighter) Highlight(language, code string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", &UnknownLanguageError{Language: language}
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s code: %w", language, err)
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return "", fmt.Errorf("failed to format %s code: %w", language, err)
	}
	return sb.String(), nil
}

// WriteCSS writes the stylesheet matching the classes Highlight emits.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// WriteCSSFile writes the stylesheet to path.
func (h *Highlighter) WriteCSSFile(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create stylesheet %s: %w", path, err)
	}
	if err := h.WriteCSS(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write stylesheet %s: %w", path, err)
	}
	return f.Close()
}

// File highlights every code block of the page at path in place.
func (h *Highlighter) File(path string) error {
	doc, err := htmlnode.ParseFile(path)
	if err != nil {
		return err
	}
	if err := h.Document(doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return htmlnode.WriteFile(path, doc)
}

// Document highlights every <pre> block of doc that wraps a <code>
// element. Blocks without <code> are left alone.
func (h *Highlighter) Document(doc *html.Node) error {
	for _, pre := range htmlnode.FindAll(doc, htmlnode.Tag("pre")) {
		code := htmlnode.Find(pre, htmlnode.Tag("code"))
		if code == nil {
			continue
		}
		language := blockLanguage(pre, code)
		if language == "" {
			return ErrNoLanguage
		}

		out, err := h.Highlight(language, htmlnode.Text(code))
		if err != nil {
			return err
		}
		nodes, err := html.ParseFragment(strings.NewReader(out), &html.Node{
			Type:     html.ElementNode,
			Data:     "code",
			DataAtom: atom.Code,
		})
		if err != nil {
			return fmt.Errorf("failed to parse highlighted %s code: %w", language, err)
		}
		htmlnode.ReplaceChildren(code, nodes...)
	}
	return nil
}

// blockLanguage reads the first class of pre, falling back to the
// language-X class goldmark sets on fenced code.
func blockLanguage(pre, code *html.Node) string {
	if classes := htmlnode.Classes(pre); len(classes) > 0 {
		return classes[0]
	}
	for _, c := range htmlnode.Classes(code) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}
