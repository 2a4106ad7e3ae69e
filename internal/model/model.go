package model

// Document is one dated Markdown post on disk.
type Document struct {
	Path string

	// PublishDate is the MM/DD/YYYY token from the first line. HasDate is
	// false when the first line does not carry one.
	PublishDate string
	HasDate     bool
	Body        []byte
	Frontmatter map[string]interface{}
	Draft       bool
}

// Post is the index entry derived from a Document.
type Post struct {
	Title string
	URL   string
	Date  string
}
