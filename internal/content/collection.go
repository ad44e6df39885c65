package content

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/slatesocial/site/internal/markdown"
	"github.com/slatesocial/site/internal/model"
)

// Collection is a directory of markdown entries sharing one frontmatter schema.
type Collection struct {
	Name   string
	Dir    string
	Schema Schema

	images ImageResolver
	parser *markdown.Parser
}

// Entry is a validated collection file.
type Entry struct {
	// ID is the slash-separated path relative to the collection directory.
	ID   string
	Slug string
	// File is the path on disk, used in error messages.
	File string
	Data Values
	Body string
	HTML []byte
}

// NewCollection creates the collection root/name. Rendered headings are
// demoted one level because every page supplies its own h1.
func NewCollection(root, name string, schema Schema) *Collection {
	return &Collection{
		Name:   name,
		Dir:    filepath.Join(root, name),
		Schema: schema,
		images: ImageResolver{Root: root},
		parser: markdown.NewParser(markdown.WithHeadingShift(1)),
	}
}

func NewBlogCollection(root string) *Collection {
	return NewCollection(root, "blog", BlogSchema)
}

// Load reads and validates every entry. If any entry is invalid the result is
// a *ValidationErrors listing every issue and no entries are returned.
// Entries are sorted by ID.
func (c *Collection) Load() ([]*Entry, error) {
	files, err := c.files()
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	var invalid []*ValidationError
	seen := make(map[string]string)

	for _, id := range files {
		entry, issues := c.loadEntry(id)
		if entry != nil {
			if first, dup := seen[entry.Slug]; dup {
				issues = append(issues, Issue{
					Field:   "slug",
					Message: fmt.Sprintf("duplicate slug %q (also used by %s)", entry.Slug, first),
				})
			} else {
				seen[entry.Slug] = id
			}
		}

		if len(issues) > 0 {
			invalid = append(invalid, &ValidationError{File: filepath.Join(c.Dir, filepath.FromSlash(id)), Issues: issues})
			continue
		}
		entries = append(entries, entry)
	}

	if len(invalid) > 0 {
		return nil, &ValidationErrors{Collection: c.Name, Entries: invalid}
	}

	return entries, nil
}

// files lists entry IDs, skipping names that start with "_" or ".".
func (c *Collection) files() ([]string, error) {
	var ids []string

	err := filepath.WalkDir(c.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != c.Dir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(name) {
			return nil
		}

		rel, err := filepath.Rel(c.Dir, p)
		if err != nil {
			return err
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("content collection directory not found", "collection", c.Name, "dir", c.Dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection %s: %w", c.Name, err)
	}

	sort.Strings(ids)
	return ids, nil
}

func (c *Collection) loadEntry(id string) (*Entry, []Issue) {
	file := filepath.Join(c.Dir, filepath.FromSlash(id))
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, []Issue{{Field: "file", Message: err.Error()}}
	}

	html, meta, err := c.parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, []Issue{{Field: "frontmatter", Message: err.Error()}}
	}

	entryDir := filepath.Dir(file)
	values, issues := c.Schema.Validate(meta, func(ref string) (*model.Image, error) {
		return c.images.Resolve(entryDir, ref)
	})

	slug := slugFromID(id)
	if raw, ok := meta["slug"]; ok {
		s, isString := raw.(string)
		s = strings.Trim(strings.TrimSpace(s), "/")
		switch {
		case !isString || s == "":
			issues = append(issues, Issue{Field: "slug", Message: "expected non-empty string"})
		case !validSlug(s):
			issues = append(issues, Issue{Field: "slug", Message: fmt.Sprintf("invalid slug %q: use lowercase letters, digits and dashes, segments separated by /", s)})
		default:
			slug = s
		}
	}

	return &Entry{
		ID:   id,
		Slug: slug,
		File: file,
		Data: values,
		Body: string(stripFrontmatter(source)),
		HTML: html,
	}, issues
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// validSlug reports whether every segment of s is already a slug, which
// rules out empty, "." and ".." segments.
func validSlug(s string) bool {
	for _, seg := range strings.Split(s, "/") {
		if seg == "" || seg != Slugify(seg) {
			return false
		}
	}
	return true
}

// slugFromID slugifies each path segment of id without its extension.
func slugFromID(id string) string {
	id = strings.TrimSuffix(id, path.Ext(id))
	parts := strings.Split(id, "/")
	for i, p := range parts {
		parts[i] = Slugify(p)
	}
	return strings.Join(parts, "/")
}

// Slugify lowercases s and joins runs of letters and digits with dashes.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// stripFrontmatter returns the markdown body after a leading --- block.
func stripFrontmatter(source []byte) []byte {
	s := string(source)
	if !strings.HasPrefix(s, "---") {
		return source
	}
	rest := s[3:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return source
	}
	body := rest[idx+4:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}
	return []byte(body)
}
