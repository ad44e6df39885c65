package ui

import (
	"context"
	"strings"
	"time"

	"github.com/slatesocial/site/internal/config"
	"github.com/slatesocial/site/internal/ctxkeys"
	"github.com/slatesocial/site/internal/model"
)

// Meta is the per-page head: title, description, canonical URL and
// structured data.
type Meta struct {
	Title       string
	Description string
	// Path is the canonical path, joined with the site URL.
	Path   string
	Type   string
	Image  string
	Schema any
}

// View is what the layout renders.
type View struct {
	Site      *config.Config
	Meta      Meta
	Canonical string
	Image     string
	Nav       []model.Link
	Footer    []model.Link
	Year      int
	Data      any
}

var footerLinks = []model.Link{
	{Label: "Team", Href: "/team"},
	{Label: "Careers", Href: "/careers"},
	{Label: "Blog", Href: "/blog"},
	{Label: "Press Kit", Href: "/press-kit"},
	{Label: "Terms", Href: "/terms"},
	{Label: "Privacy", Href: "/privacy"},
}

func newView(ctx context.Context, meta Meta, data any) *View {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		cfg = &config.Config{SiteName: "Slate Social"}
	}

	if meta.Title == "" {
		meta.Title = cfg.SiteTitle
	} else if !strings.Contains(meta.Title, cfg.SiteName) {
		meta.Title = meta.Title + " | " + cfg.SiteName
	}
	if meta.Description == "" {
		meta.Description = cfg.SiteDescription
	}
	if meta.Type == "" {
		meta.Type = "website"
	}

	return &View{
		Site:      cfg,
		Meta:      meta,
		Canonical: absURL(cfg.SiteURL, meta.Path),
		Image:     absURL(cfg.SiteURL, meta.Image),
		Nav:       navLinks(ctxkeys.URLPath(ctx), cfg.AppLoginURL),
		Footer:    footerLinks,
		Year:      year(ctx),
		Data:      data,
	}
}

// navLinks points section links at the landing page. On the landing page
// itself they stay bare fragments so the browser scrolls instead of
// navigating.
func navLinks(currentPath, loginURL string) []model.Link {
	prefix := "/"
	if currentPath == "/" || currentPath == "" {
		prefix = ""
	}
	links := []model.Link{
		{Label: "About", Href: prefix + "#about"},
		{Label: "Features", Href: prefix + "#features"},
		{Label: "Blog", Href: "/blog"},
		{Label: "Contact", Href: prefix + "#register"},
	}
	if loginURL != "" {
		links = append(links, model.Link{Label: "Login", Href: loginURL, External: true})
	}
	return links
}

func year(ctx context.Context) int {
	return ctxkeys.BuildTime(ctx).In(time.UTC).Year()
}

func absURL(base, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	base = strings.TrimSuffix(base, "/")
	if p == "/" {
		return base + "/"
	}
	return base + p
}
