package service

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/slatesocial/site/internal/model"
)

// publicRoutes are the static pages of the site.
// Blog posts and content pages are added from their collections.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "weekly"},
	{"/blog", "0.8", "weekly"},
}

type SitemapService struct {
	baseURL string
	now     func() time.Time
}

func NewSitemapService(baseURL string) *SitemapService {
	return &SitemapService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateSitemap renders sitemap.xml for the static routes, posts and pages.
func (s *SitemapService) GenerateSitemap(posts []*model.BlogPost, pages []*model.Page) ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []model.SitemapURL{},
	}

	today := s.now().UTC().Format("2006-01-02")
	for _, route := range publicRoutes {
		lastMod := today
		// the blog index changes when the newest post does
		if route.Path == "/blog" && len(posts) > 0 {
			lastMod = posts[0].PubDate.Format("2006-01-02")
		}
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    lastMod,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	for _, post := range posts {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + post.URL(),
			LastMod:    post.PubDate.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	for _, page := range pages {
		u := model.SitemapURL{
			Loc:        s.baseURL + page.URL(),
			ChangeFreq: "yearly",
			Priority:   "0.3",
		}
		if t, ok := Updated(page); ok {
			u.LastMod = t.Format("2006-01-02")
		}
		sitemap.URLs = append(sitemap.URLs, u)
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}
