package model

import (
	"time"
)

// BlogPost is a validated entry of the blog collection.
type BlogPost struct {
	Title       string
	Slug        string
	PubDate     time.Time
	Author      string
	AuthorImage *Image
	Description string
	HeroImage   *Image
	Content     string
	HTMLContent string
	ReadTime    int
	// File is the entry path relative to the collection directory.
	File string
}

func (p *BlogPost) URL() string {
	return "/blog/" + p.Slug
}

// Images returns the post's image references in schema order.
func (p *BlogPost) Images() []*Image {
	return []*Image{p.AuthorImage, p.HeroImage}
}
