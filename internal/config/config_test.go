package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addisoncox/addisoncox.github.io/internal/model"
)

const wantHeader = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="./../styles.css"/>
    <title>Addison Cox</title>
</head>
<body>
    <header>
        <nav>
            <ul>
                <li><a href="/">Home</a></li>
                <li><a href="./posts">Posts</a></li>
                <li><a href="./contact">Contact</a></li>
            </ul>
        </nav>
    </header>
    
    <section class="content">
<div class="container">
`

func TestDefaultLayoutRendersFixedHeader(t *testing.T) {
	cfg := Default()
	layout, err := cfg.LoadLayout()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, layout.Header.Execute(&sb, model.PageData{
		SiteTitle:      cfg.SiteTitle,
		StylesheetHref: cfg.StylesheetHref,
	}))
	assert.Equal(t, wantHeader, sb.String())

	sb.Reset()
	require.NoError(t, layout.Footer.Execute(&sb, model.PageData{}))
	assert.Equal(t, DefaultFooter, sb.String())
}

func TestLoadLayoutFromFile(t *testing.T) {
	dir := t.TempDir()
	header := filepath.Join(dir, "header.html")
	require.NoError(t, os.WriteFile(header, []byte(`<title>{{.SiteTitle}} | {{.Post.Title}}</title>`), 0o644))

	cfg := Default()
	cfg.HeaderTemplate = header
	layout, err := cfg.LoadLayout()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, layout.Header.Execute(&sb, model.PageData{
		SiteTitle: "Blog",
		Post:      model.Post{Title: "Hello"},
	}))
	assert.Equal(t, "<title>Blog | Hello</title>", sb.String())
}

func TestLoadLayoutMissingFile(t *testing.T) {
	cfg := Default()
	cfg.FooterTemplate = filepath.Join(t.TempDir(), "missing.html")
	_, err := cfg.LoadLayout()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg := Default()
	cfg.InputDir = ""
	cfg.IndexPage = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inputDir, indexPage")

	cfg = Default()
	cfg.MarkupExt = "md"
	assert.Error(t, cfg.Validate())
}
