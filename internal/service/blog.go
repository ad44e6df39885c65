package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slatesocial/site/internal/content"
	"github.com/slatesocial/site/internal/model"
)

type BlogService struct {
	collection *content.Collection
}

func NewBlogService(contentPath string) *BlogService {
	return &BlogService{
		collection: content.NewBlogCollection(contentPath),
	}
}

// Posts loads and validates the blog collection, newest first.
// Any invalid entry fails the whole call with *content.ValidationErrors.
func (s *BlogService) Posts() ([]*model.BlogPost, error) {
	entries, err := s.collection.Load()
	if err != nil {
		return nil, err
	}

	posts := make([]*model.BlogPost, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, postFromEntry(e))
	}

	SortPosts(posts)
	return posts, nil
}

func (s *BlogService) Post(slug string) (*model.BlogPost, error) {
	posts, err := s.Posts()
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("blog post not found: %s", slug)
}

// SortPosts orders posts by publication date descending, then slug.
func SortPosts(posts []*model.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Latest returns the first n posts of an already sorted slice.
func Latest(posts []*model.BlogPost, n int) []*model.BlogPost {
	if n < len(posts) {
		return posts[:n]
	}
	return posts
}

func postFromEntry(e *content.Entry) *model.BlogPost {
	return &model.BlogPost{
		Title:       e.Data.String("title"),
		Slug:        e.Slug,
		PubDate:     e.Data.Time("pubDate"),
		Author:      e.Data.String("author"),
		AuthorImage: e.Data.Image("authorImage"),
		Description: e.Data.String("description"),
		HeroImage:   e.Data.Image("heroImage"),
		Content:     e.Body,
		HTMLContent: string(e.HTML),
		ReadTime:    calculateReadTime(e.Body),
		File:        e.ID,
	}
}

func calculateReadTime(content string) int {
	words := strings.Fields(content)
	wordsPerMinute := 200
	readTime := len(words) / wordsPerMinute
	if readTime < 1 {
		readTime = 1
	}
	return readTime
}
