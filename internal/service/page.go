package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/slatesocial/site/internal/content"
	"github.com/slatesocial/site/internal/markdown"
	"github.com/slatesocial/site/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageService loads standalone markdown pages (team, careers, terms...)
// from contentDir/pages. Frontmatter is optional here.
type PageService struct {
	contentDir string
	parser     *markdown.Parser
}

func NewPageService(contentDir string) *PageService {
	return &PageService{
		contentDir: filepath.Join(contentDir, "pages"),
		parser:     markdown.NewParser(markdown.WithHeadingShift(1)),
	}
}

func (s *PageService) Pages() ([]*model.Page, error) {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pages directory: %w", err)
	}

	var pages []*model.Page
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".md") || strings.HasPrefix(name, "_") {
			continue
		}

		page, err := s.loadPage(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %s: %w", name, err)
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Slug < pages[j].Slug
	})
	return pages, nil
}

func (s *PageService) loadPage(name string) (*model.Page, error) {
	filePath := filepath.Join(s.contentDir, name)
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	slug := content.Slugify(strings.TrimSuffix(name, ".md"))
	if v, ok := meta["slug"].(string); ok && v != "" {
		slug = content.Slugify(v)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		title = cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
	}

	description, _ := meta["description"].(string)

	// lastUpdated from frontmatter first, then file modification time
	var lastUpdated string
	if v, ok := meta["lastUpdated"]; ok {
		if t, err := content.CoerceDate(v); err == nil {
			lastUpdated = t.Format("January 2, 2006")
		}
	}
	if lastUpdated == "" {
		info, err := os.Stat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to get file info: %w", err)
		}
		lastUpdated = info.ModTime().UTC().Format("January 2, 2006")
	}

	return &model.Page{
		Title:       title,
		Slug:        slug,
		Description: description,
		HTMLContent: string(html),
		LastUpdated: lastUpdated,
	}, nil
}

// Updated parses a page's LastUpdated back into a date for the sitemap.
func Updated(p *model.Page) (time.Time, bool) {
	t, err := time.Parse("January 2, 2006", p.LastUpdated)
	return t, err == nil
}
