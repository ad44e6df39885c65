package model

// Page is a standalone markdown page such as the terms or team page.
type Page struct {
	Title       string
	Slug        string
	Description string
	HTMLContent string
	LastUpdated string
}

func (p *Page) URL() string {
	return "/" + p.Slug
}
