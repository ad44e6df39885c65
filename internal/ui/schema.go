package ui

import (
	"context"

	"github.com/slatesocial/site/internal/ctxkeys"
	"github.com/slatesocial/site/internal/model"
)

// JSON-LD documents, marshalled by html/template inside
// <script type="application/ld+json">.

func organizationSchema(ctx context.Context) map[string]any {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		return nil
	}
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        cfg.SiteName,
		"url":         absURL(cfg.SiteURL, "/"),
		"description": cfg.SiteDescription,
		"slogan":      cfg.SiteTagline,
	}
}

func articleSchema(ctx context.Context, post *model.BlogPost) map[string]any {
	cfg := ctxkeys.Config(ctx)
	if cfg == nil {
		return nil
	}
	s := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         post.Title,
		"description":      post.Description,
		"datePublished":    post.PubDate.Format("2006-01-02T15:04:05Z07:00"),
		"mainEntityOfPage": absURL(cfg.SiteURL, post.URL()),
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  cfg.SiteName,
		},
	}
	if post.Author != "" {
		s["author"] = map[string]any{"@type": "Person", "name": post.Author}
	}
	if post.HeroImage != nil && post.HeroImage.Src != "" {
		s["image"] = absURL(cfg.SiteURL, post.HeroImage.Src)
	}
	return s
}
