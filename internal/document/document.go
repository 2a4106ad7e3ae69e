// Package document reads dated Markdown posts.
//
// A post's first line carries its publish date as MM/DD/YYYY. The line is
// always dropped from the body, whether or not it holds a date.
package document

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v2"

	"github.com/addisoncox/addisoncox.github.io/internal/model"
)

var datePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`)

// Only delimited YAML and TOML blocks count as front matter; a body that
// opens with "{" is plain Markdown.
var frontmatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// ExtractDate returns the MM/DD/YYYY token that starts line. The token is
// not checked against the calendar.
func ExtractDate(line string) (string, bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Read loads path, splits off the date line and strips an optional front
// matter block from the remaining body. A block that does not parse is
// logged and left in the body. A nil logger uses slog.Default.
func Read(path string, logger *slog.Logger) (*model.Document, error) {
	if logger == nil {
		logger = slog.Default()
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	first, body := splitFirstLine(content)
	date, ok := ExtractDate(string(first))

	fm := map[string]interface{}{}
	rest := body
	if len(body) > 0 {
		parsed, fmErr := frontmatter.Parse(bytes.NewReader(body), &fm, frontmatterFormats...)
		if fmErr != nil {
			logger.Warn("could not parse front matter, treating as Markdown", "path", path, "error", fmErr)
			fm = map[string]interface{}{}
		} else {
			rest = parsed
		}
	}

	draft, _ := fm["draft"].(bool)
	return &model.Document{
		Path:        path,
		PublishDate: date,
		HasDate:     ok,
		Body:        rest,
		Frontmatter: fm,
		Draft:       draft,
	}, nil
}

func splitFirstLine(content []byte) (first, rest []byte) {
	i := bytes.IndexByte(content, '\n')
	if i < 0 {
		return content, nil
	}
	return content[:i], content[i+1:]
}
