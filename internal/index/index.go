// Package index orders posts and rewrites the post list of the index page.
package index

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/addisoncox/addisoncox.github.io/internal/htmlnode"
	"github.com/addisoncox/addisoncox.github.io/internal/model"
)

// DateLayout is the publish date format of a post's first line.
const DateLayout = "01/02/2006"

// PostListClass marks the <ul> element holding the post links.
const PostListClass = "post-list"

// ErrPostListNotFound is returned when the index page has no
// <ul class="post-list">.
var ErrPostListNotFound = errors.New("could not find the existing post list in the HTML file")

// Sort returns posts ordered newest first. Posts sharing a date keep
// their input order. Every post must carry a parseable date.
func Sort(posts []model.Post) ([]model.Post, error) {
	type dated struct {
		post model.Post
		at   time.Time
	}
	items := make([]dated, 0, len(posts))
	for _, p := range posts {
		at, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid publish date %q for post %q: %w", p.Date, p.Title, err)
		}
		items = append(items, dated{post: p, at: at})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].at.After(items[j].at)
	})

	sorted := make([]model.Post, len(items))
	for i, it := range items {
		sorted[i] = it.post
	}
	return sorted, nil
}

// Rebuild replaces the children of the post list in the page at path with
// one link per post. The file is left untouched when the list is missing.
func Rebuild(path string, posts []model.Post) error {
	doc, err := htmlnode.ParseFile(path)
	if err != nil {
		return err
	}
	if err := Apply(doc, posts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return htmlnode.WriteFile(path, doc)
}

// Apply rewrites the post list of doc.
func Apply(doc *html.Node, posts []model.Post) error {
	list := htmlnode.Find(doc, htmlnode.TagWithClass("ul", PostListClass))
	if list == nil {
		return ErrPostListNotFound
	}

	items := make([]*html.Node, 0, len(posts))
	for _, p := range posts {
		items = append(items, listItem(p))
	}
	htmlnode.ReplaceChildren(list, items...)
	return nil
}

func listItem(p model.Post) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: p.URL}},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: p.Title})

	li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
	li.AppendChild(a)
	return li
}
