package model

// PageData is passed to the header and footer templates.
type PageData struct {
	SiteTitle      string
	StylesheetHref string
	Post           Post
}
