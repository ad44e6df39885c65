package service

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/slatesocial/site/internal/model"
)

type FeedService struct {
	baseURL     string
	title       string
	description string
}

func NewFeedService(baseURL, title, description string) *FeedService {
	return &FeedService{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		title:       title,
		description: description,
	}
}

// GenerateRSS renders an RSS 2.0 feed of posts in the order given.
func (s *FeedService) GenerateRSS(posts []*model.BlogPost) ([]byte, error) {
	items := make([]model.RSSItem, 0, len(posts))
	for _, p := range posts {
		link := s.baseURL + p.URL()
		items = append(items, model.RSSItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			Description: p.Description,
			Author:      p.Author,
			PubDate:     p.PubDate.UTC().Format(time.RFC1123Z),
		})
	}

	feed := model.RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		DC:      "http://purl.org/dc/elements/1.1/",
		Channel: model.RSSChannel{
			Title:       s.title,
			Link:        s.baseURL + "/blog",
			Description: s.description,
			Language:    "en",
			AtomLink: model.AtomLink{
				Href: s.baseURL + "/rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	if len(posts) > 0 {
		feed.Channel.LastBuildDate = posts[0].PubDate.UTC().Format(time.RFC1123Z)
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return []byte(xml.Header + string(output)), nil
}
