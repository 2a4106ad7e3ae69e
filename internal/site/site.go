// Package site runs the full post build: every document in the input
// directory becomes a highlighted page, then the index page's post list
// is rebuilt from the posts of this run.
package site

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/addisoncox/addisoncox.github.io/internal/config"
	"github.com/addisoncox/addisoncox.github.io/internal/document"
	"github.com/addisoncox/addisoncox.github.io/internal/highlight"
	"github.com/addisoncox/addisoncox.github.io/internal/index"
	"github.com/addisoncox/addisoncox.github.io/internal/model"
	"github.com/addisoncox/addisoncox.github.io/internal/render"
)

// ErrInputDirNotFound is returned before anything is written when the
// input directory does not exist.
var ErrInputDirNotFound = errors.New("input directory does not exist")

// Result describes a completed build.
type Result struct {
	// Posts in index order, newest first.
	Posts []model.Post

	// Pages lists the written output files in processing order.
	Pages []string

	// Drafts lists the documents skipped because of their front matter.
	Drafts []string
}

// Builder converts one input directory per Build call.
type Builder struct {
	cfg         config.Config
	logger      *slog.Logger
	renderer    *render.Renderer
	highlighter *highlight.Highlighter
	lower       cases.Caser
}

// NewBuilder validates cfg and loads its page layout. A nil logger uses
// slog.Default.
func NewBuilder(cfg config.Config, logger *slog.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.LoadLayout()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		cfg:         cfg,
		logger:      logger,
		renderer:    render.New(layout),
		highlighter: highlight.New(cfg.HighlightStyle, logger),
		lower:       cases.Lower(language.Und),
	}, nil
}

// Build converts every document and rebuilds the index page. Pages
// written before a failure are left in place.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	dir := b.cfg.InputDir
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputDirNotFound, dir)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat input directory %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", b.cfg.OutputDir, err)
	}

	res := &Result{}
	var posts []model.Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), b.cfg.MarkupExt) {
			continue
		}
		if entry.Name() == b.cfg.MarkupExt {
			b.logger.Warn("skipping document without a title", "path", filepath.Join(dir, entry.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		post, outPath, err := b.buildPost(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if outPath == "" {
			res.Drafts = append(res.Drafts, entry.Name())
			continue
		}
		posts = append(posts, post)
		res.Pages = append(res.Pages, outPath)
	}

	if b.cfg.HighlightCSS != "" {
		if err := b.highlighter.WriteCSSFile(b.cfg.HighlightCSS); err != nil {
			return nil, err
		}
		b.logger.Info("wrote highlight stylesheet", "path", b.cfg.HighlightCSS, "style", b.cfg.HighlightStyle)
	}

	sorted, err := index.Sort(posts)
	if err != nil {
		return nil, err
	}
	if err := index.Rebuild(b.cfg.IndexPage, sorted); err != nil {
		return nil, err
	}
	b.logger.Info("rebuilt post list", "index", b.cfg.IndexPage, "posts", len(sorted))

	res.Posts = sorted
	return res, nil
}

// buildPost converts and highlights one document. Drafts return an empty
// output path.
func (b *Builder) buildPost(path string) (model.Post, string, error) {
	doc, err := document.Read(path, b.logger)
	if err != nil {
		return model.Post{}, "", err
	}
	if doc.Draft {
		b.logger.Info("skipping draft", "path", path)
		return model.Post{}, "", nil
	}

	title := strings.TrimSuffix(filepath.Base(path), b.cfg.MarkupExt)
	post := model.Post{
		Title: title,
		URL:   b.cfg.PostURLPrefix + b.lower.String(title),
		Date:  doc.PublishDate,
	}
	if !doc.HasDate {
		b.logger.Warn("document has no publish date", "path", path)
	}

	outPath := filepath.Join(b.cfg.OutputDir, title+".html")
	data := model.PageData{
		SiteTitle:      b.cfg.SiteTitle,
		StylesheetHref: b.cfg.StylesheetHref,
		Post:           post,
	}
	if err := b.renderer.Page(doc, data, outPath); err != nil {
		return model.Post{}, "", err
	}
	if err := b.highlighter.File(outPath); err != nil {
		return model.Post{}, "", err
	}
	b.logger.Debug("converted post", "source", path, "page", outPath)
	return post, outPath, nil
}
