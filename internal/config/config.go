package config

import (
	"errors"
	"fmt"
	"html/template"
	"os"
	"strings"
)

// Config holds every path and presentation setting the build reads.
type Config struct {
	InputDir       string `mapstructure:"inputDir" yaml:"inputDir"`
	OutputDir      string `mapstructure:"outputDir" yaml:"outputDir"`
	IndexPage      string `mapstructure:"indexPage" yaml:"indexPage"`
	StylesheetHref string `mapstructure:"stylesheetHref" yaml:"stylesheetHref"`
	SiteTitle      string `mapstructure:"siteTitle" yaml:"siteTitle"`
	PostURLPrefix  string `mapstructure:"postURLPrefix" yaml:"postURLPrefix"`
	MarkupExt      string `mapstructure:"markupExt" yaml:"markupExt"`

	// HeaderTemplate and FooterTemplate are optional html/template files
	// that replace the built-in page layout.
	HeaderTemplate string `mapstructure:"headerTemplate" yaml:"headerTemplate,omitempty"`
	FooterTemplate string `mapstructure:"footerTemplate" yaml:"footerTemplate,omitempty"`

	HighlightStyle string `mapstructure:"highlightStyle" yaml:"highlightStyle"`
	HighlightCSS   string `mapstructure:"highlightCSS" yaml:"highlightCSS,omitempty"`
}

// Default returns the layout the site has always been built with.
func Default() Config {
	return Config{
		InputDir:       "../md/posts",
		OutputDir:      "../posts",
		IndexPage:      "../posts.html",
		StylesheetHref: "./../styles.css",
		SiteTitle:      "Addison Cox",
		PostURLPrefix:  "/posts/",
		MarkupExt:      ".md",
		HighlightStyle: "monokai",
	}
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	var missing []string
	if c.InputDir == "" {
		missing = append(missing, "inputDir")
	}
	if c.OutputDir == "" {
		missing = append(missing, "outputDir")
	}
	if c.IndexPage == "" {
		missing = append(missing, "indexPage")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config keys: %s", strings.Join(missing, ", "))
	}
	if !strings.HasPrefix(c.MarkupExt, ".") {
		return errors.New("markupExt must start with a dot")
	}
	return nil
}

// DefaultHeader is the page header every post is wrapped in.
const DefaultHeader = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <link rel="stylesheet" href="{{.StylesheetHref}}"/>
    <title>{{.SiteTitle}}</title>
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

// DefaultFooter closes the elements DefaultHeader opens.
const DefaultFooter = `
</div>
    </section>
    
</body>
`

// Layout holds the parsed header and footer templates.
type Layout struct {
	Header *template.Template
	Footer *template.Template
}

// LoadLayout parses the configured header and footer, falling back to the
// built-in templates when no file is set.
func (c Config) LoadLayout() (Layout, error) {
	header, err := loadTemplate("header", c.HeaderTemplate, DefaultHeader)
	if err != nil {
		return Layout{}, err
	}
	footer, err := loadTemplate("footer", c.FooterTemplate, DefaultFooter)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Header: header, Footer: footer}, nil
}

func loadTemplate(name, path, fallback string) (*template.Template, error) {
	text := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s template %s: %w", name, path, err)
		}
		text = string(b)
	}
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	return tpl, nil
}
