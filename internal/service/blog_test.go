package service

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/slatesocial/site/internal/content"
	"github.com/slatesocial/site/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 4))))
}

func writePost(t *testing.T, root, slug, title, date string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "blog", slug+".md"), fmt.Sprintf(`---
title: %s
description: About %s.
pubDate: %s
author: Jo Belayer
authorImage: ./images/jo.png
heroImage: ./images/hero.png
---

Body of %s.
`, title, slug, date, slug))
}

func newBlogRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "blog", "images", "jo.png"))
	writePNG(t, filepath.Join(root, "blog", "images", "hero.png"))
	return root
}

func TestPostsNewestFirst(t *testing.T) {
	root := newBlogRoot(t)
	writePost(t, root, "bouldering-leagues", "Bouldering leagues", "2024-02-10")
	writePost(t, root, "member-retention", "Member retention", "2024-06-01")
	writePost(t, root, "first-post", "First post", "2023-11-20")

	posts, err := NewBlogService(root).Posts()
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "member-retention", posts[0].Slug)
	assert.Equal(t, "bouldering-leagues", posts[1].Slug)
	assert.Equal(t, "first-post", posts[2].Slug)

	p := posts[0]
	assert.Equal(t, "Member retention", p.Title)
	assert.Equal(t, "Jo Belayer", p.Author)
	assert.Equal(t, "/blog/member-retention", p.URL())
	assert.Equal(t, "member-retention.md", p.File)
	assert.Contains(t, p.HTMLContent, "Body of member-retention.")
	assert.Equal(t, 1, p.ReadTime)
	require.NotNil(t, p.HeroImage)
	assert.Equal(t, 8, p.HeroImage.Width)
}

func TestPostsInvalidEntry(t *testing.T) {
	root := newBlogRoot(t)
	writePost(t, root, "good", "Good", "2024-01-01")
	writeFile(t, filepath.Join(root, "blog", "bad.md"), "---\ntitle: Missing everything\n---\nbody\n")

	posts, err := NewBlogService(root).Posts()
	assert.Nil(t, posts)

	var verrs *content.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Entries, 1)
	assert.True(t, verrs.Entries[0].Has("pubDate"))
}

func TestPost(t *testing.T) {
	root := newBlogRoot(t)
	writePost(t, root, "gym-news", "Gym news", "2024-04-04")

	svc := NewBlogService(root)
	p, err := svc.Post("gym-news")
	require.NoError(t, err)
	assert.Equal(t, "Gym news", p.Title)

	_, err = svc.Post("missing")
	assert.Error(t, err)
}

func TestSortPostsTiesBySlug(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posts := []*model.BlogPost{
		{Slug: "b", PubDate: day},
		{Slug: "old", PubDate: day.AddDate(0, 0, -1)},
		{Slug: "a", PubDate: day},
		{Slug: "new", PubDate: day.AddDate(0, 0, 1)},
	}

	SortPosts(posts)

	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"new", "a", "b", "old"}, slugs)
}

func TestLatest(t *testing.T) {
	posts := []*model.BlogPost{{Slug: "1"}, {Slug: "2"}, {Slug: "3"}, {Slug: "4"}}
	assert.Len(t, Latest(posts, 3), 3)
	assert.Equal(t, "1", Latest(posts, 3)[0].Slug)
	assert.Len(t, Latest(posts[:2], 3), 2)
	assert.Empty(t, Latest(nil, 3))
}

func TestCalculateReadTime(t *testing.T) {
	assert.Equal(t, 1, calculateReadTime(""))
	assert.Equal(t, 1, calculateReadTime("one two three"))
	assert.Equal(t, 3, calculateReadTime(strings.Repeat("word ", 650)))
}
