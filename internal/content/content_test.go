package content

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

const validPost = `---
title: Route setting meets community
description: How gyms use message boards to share new sets.
pubDate: 2024-03-01
author: Sam Setter
authorImage: ./images/sam.png
heroImage: ./images/hero.png
---

# Fresh sets every week

Members love it.
`

func newSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "blog", "images", "sam.png"), 4, 4)
	writePNG(t, filepath.Join(root, "blog", "images", "hero.png"), 32, 16)
	return root
}

func TestLoadValidEntry(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "blog", "route-setting.md"), validPost)

	entries, err := NewBlogCollection(root).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "route-setting.md", e.ID)
	assert.Equal(t, "route-setting", e.Slug)
	assert.Equal(t, "Route setting meets community", e.Data.String("title"))
	assert.Equal(t, "Sam Setter", e.Data.String("author"))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), e.Data.Time("pubDate"))

	hero := e.Data.Image("heroImage")
	require.NotNil(t, hero)
	assert.Equal(t, "./images/hero.png", hero.Source)
	assert.Equal(t, filepath.Join(root, "blog", "images", "hero.png"), hero.Path)
	assert.Equal(t, "image/png", hero.Format)
	assert.Equal(t, 32, hero.Width)
	assert.Equal(t, 16, hero.Height)

	// body headings are demoted so the page keeps a single h1
	assert.NotContains(t, string(e.HTML), "<h1")
	assert.Contains(t, string(e.HTML), "<h2")
	assert.NotContains(t, e.Body, "title:")
	assert.Contains(t, e.Body, "Members love it.")
}

func TestLoadMissingPubDateNamesFileAndField(t *testing.T) {
	root := newSite(t)
	file := filepath.Join(root, "blog", "first-post.md")
	writeFile(t, file, `---
title: First post
description: Hello
author: Sam
authorImage: ./images/sam.png
heroImage: ./images/hero.png
---
body
`)

	entries, err := NewBlogCollection(root).Load()
	require.Error(t, err)
	assert.Nil(t, entries)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Entries, 1)
	entry := verrs.For(file)
	require.NotNil(t, entry)
	assert.Equal(t, []Issue{{Field: "pubDate", Message: "required"}}, entry.Issues)
	assert.Contains(t, err.Error(), file+": pubDate: required")
}

func TestLoadFieldIssues(t *testing.T) {
	tests := []struct {
		name    string
		fm      string
		field   string
		message string
	}{
		{
			name:    "empty title",
			fm:      "title: \"  \"\ndescription: d\npubDate: 2024-01-01\nauthor: a\nauthorImage: ./images/sam.png\nheroImage: ./images/hero.png",
			field:   "title",
			message: "must not be empty",
		},
		{
			name:    "numeric description",
			fm:      "title: t\ndescription: 42\npubDate: 2024-01-01\nauthor: a\nauthorImage: ./images/sam.png\nheroImage: ./images/hero.png",
			field:   "description",
			message: "expected string, received number",
		},
		{
			name:    "unparseable date",
			fm:      "title: t\ndescription: d\npubDate: someday\nauthor: a\nauthorImage: ./images/sam.png\nheroImage: ./images/hero.png",
			field:   "pubDate",
			message: `invalid date: "someday"`,
		},
		{
			name:    "missing hero image file",
			fm:      "title: t\ndescription: d\npubDate: 2024-01-01\nauthor: a\nauthorImage: ./images/sam.png\nheroImage: ./images/nope.png",
			field:   "heroImage",
			message: "image not found",
		},
		{
			name:    "remote author image",
			fm:      "title: t\ndescription: d\npubDate: 2024-01-01\nauthor: a\nauthorImage: https://cdn.example.com/a.png\nheroImage: ./images/hero.png",
			field:   "authorImage",
			message: "remote images are not supported",
		},
		{
			name:    "null author",
			fm:      "title: t\ndescription: d\npubDate: 2024-01-01\nauthor:\nauthorImage: ./images/sam.png\nheroImage: ./images/hero.png",
			field:   "author",
			message: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newSite(t)
			file := filepath.Join(root, "blog", "post.md")
			writeFile(t, file, "---\n"+tt.fm+"\n---\nbody\n")

			_, err := NewBlogCollection(root).Load()
			var verrs *ValidationErrors
			require.True(t, errors.As(err, &verrs), "got %v", err)

			entry := verrs.For(file)
			require.NotNil(t, entry)
			require.Len(t, entry.Issues, 1)
			assert.Equal(t, tt.field, entry.Issues[0].Field)
			assert.Contains(t, entry.Issues[0].Message, tt.message)
		})
	}
}

func TestLoadReportsEveryInvalidEntry(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "blog", "good.md"), validPost)
	writeFile(t, filepath.Join(root, "blog", "a.md"), "---\ntitle: A\n---\n")
	writeFile(t, filepath.Join(root, "blog", "b.md"), "no frontmatter at all\n")

	entries, err := NewBlogCollection(root).Load()
	assert.Nil(t, entries)

	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs.Entries, 2)
	assert.Equal(t, filepath.Join(root, "blog", "a.md"), verrs.Entries[0].File)
	assert.Len(t, verrs.Entries[0].Issues, 5)
	assert.Len(t, verrs.Entries[1].Issues, 6)
	assert.Equal(t, "title", verrs.Entries[1].Issues[0].Field)
	assert.Contains(t, err.Error(), `collection "blog": 11 invalid field(s) in 2 entry file(s)`)
}

func TestLoadMalformedFrontmatter(t *testing.T) {
	root := newSite(t)
	file := filepath.Join(root, "blog", "broken.md")
	writeFile(t, file, "---\ntitle: [oops\n---\n")

	_, err := NewBlogCollection(root).Load()
	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.For(file).Has("frontmatter"))
}

func TestLoadSkipsDraftsAndSupportsSlugOverride(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "blog", "_draft.md"), "---\ntitle: wip\n---\n")
	writeFile(t, filepath.Join(root, "blog", ".hidden.md"), "---\ntitle: wip\n---\n")
	writeFile(t, filepath.Join(root, "blog", "notes.txt"), "not markdown")
	writeFile(t, filepath.Join(root, "blog", "Launch Day!.md"), validPost)
	writeFile(t, filepath.Join(root, "blog", "custom.md"),
		"---\nslug: hello-world\n"+validPost[len("---\n"):])

	entries, err := NewBlogCollection(root).Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "launch-day", entries[0].Slug)
	assert.Equal(t, "hello-world", entries[1].Slug)
}

func TestLoadDuplicateSlug(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "blog", "one.md"), validPost)
	writeFile(t, filepath.Join(root, "blog", "two.md"), "---\nslug: one\n"+validPost[len("---\n"):])

	_, err := NewBlogCollection(root).Load()
	var verrs *ValidationErrors
	require.True(t, errors.As(err, &verrs))
	entry := verrs.For(filepath.Join(root, "blog", "two.md"))
	require.NotNil(t, entry)
	assert.True(t, entry.Has("slug"))
}

func TestLoadRejectsUnsafeSlug(t *testing.T) {
	for _, slug := range []string{"../terms", "../../escaped", "news/../x", "a//b", "./x", "Hello World"} {
		t.Run(slug, func(t *testing.T) {
			root := newSite(t)
			file := filepath.Join(root, "blog", "post.md")
			writeFile(t, file, "---\nslug: \""+slug+"\"\n"+validPost[len("---\n"):])

			entries, err := NewBlogCollection(root).Load()
			assert.Nil(t, entries)

			var verrs *ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.NotNil(t, verrs.For(file))
			assert.True(t, verrs.For(file).Has("slug"))
		})
	}
}

func TestLoadNestedSlug(t *testing.T) {
	root := newSite(t)
	writeFile(t, filepath.Join(root, "blog", "post.md"), "---\nslug: news/launch-day\n"+validPost[len("---\n"):])

	entries, err := NewBlogCollection(root).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "news/launch-day", entries[0].Slug)
}

func TestLoadUnquotedTimestamps(t *testing.T) {
	root := newSite(t)
	body := validPost[strings.Index(validPost, "author:"):]
	writeFile(t, filepath.Join(root, "blog", "date.md"), "---\ntitle: Date only\ndescription: d\npubDate: 2024-03-01\n"+body)
	writeFile(t, filepath.Join(root, "blog", "datetime.md"), "---\ntitle: Date time\ndescription: d\npubDate: 2024-03-01T18:30:00+02:00\n"+body)

	entries, err := NewBlogCollection(root).Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Data.Time("pubDate").Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, entries[1].Data.Time("pubDate").Equal(time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC)))
}

func TestLoadMissingDirectory(t *testing.T) {
	entries, err := NewBlogCollection(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRootedImageReference(t *testing.T) {
	root := newSite(t)
	writePNG(t, filepath.Join(root, "shared", "team.png"), 2, 2)

	img, err := ImageResolver{Root: root}.Resolve(filepath.Join(root, "blog"), "/shared/team.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "shared", "team.png"), img.Path)
}

func TestSVGDimensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.svg"), `<svg xmlns="http://www.w3.org/2000/svg" width="120px" height="40"></svg>`)
	writeFile(t, filepath.Join(dir, "b.svg"), `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 12"></svg>`)

	a, err := ImageResolver{}.Resolve(dir, "a.svg")
	require.NoError(t, err)
	assert.Equal(t, [2]int{120, 40}, [2]int{a.Width, a.Height})

	b, err := ImageResolver{}.Resolve(dir, "b.svg")
	require.NoError(t, err)
	assert.Equal(t, [2]int{24, 12}, [2]int{b.Width, b.Height})
}

func TestCoerceDate(t *testing.T) {
	want := time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   any
		want time.Time
	}{
		{"2022-07-08", want},
		{"Jul 08 2022", want},
		{"July 8, 2022", want},
		{"2022-07-08T00:00:00Z", want},
		{"2022-07-08T02:00:00+02:00", want},
		{want.UnixMilli(), want},
		{int(want.UnixMilli()), want},
		{float64(want.UnixMilli()), want},
		{want.In(time.FixedZone("x", 3600)), want},
	}

	for _, tt := range tests {
		got, err := CoerceDate(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.True(t, tt.want.Equal(got), "CoerceDate(%v) = %v, want %v", tt.in, got, tt.want)
	}

	for _, bad := range []any{"", "yesterday", true, []any{"2022"}} {
		_, err := CoerceDate(bad)
		assert.Error(t, err, "%v", bad)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "groups-clubs", Slugify("Groups & Clubs"))
	assert.Equal(t, "2024-recap", Slugify("  2024 Recap!! "))
	assert.Equal(t, "news/launch-day", slugFromID("News/Launch Day.md"))
}
