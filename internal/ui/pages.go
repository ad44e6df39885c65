package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/slatesocial/site/internal/ctxkeys"
	"github.com/slatesocial/site/internal/model"
	"github.com/slatesocial/site/internal/validation"
)

// LatestPostsCount is how many posts the landing page previews.
const LatestPostsCount = 3

type HomeData struct {
	Features []model.Feature
	Benefits []model.Benefit
	Stats    []model.Stat
	Glitch   []string
	Posts    []*model.BlogPost
	Form     Form
}

// Form is the registration form state. Values and Errors are keyed by
// field name and nil on first render.
type Form struct {
	Action string
	Values map[string]string
	Errors validation.Errors
}

func (f Form) Invalid(field string) bool {
	return f.Errors.Has(field)
}

type BlogIndexData struct {
	Posts []*model.BlogPost
}

type BlogPostData struct {
	Post *model.BlogPost
}

type ContentPageData struct {
	Page *model.Page
}

type ThanksData struct {
	Name string
	// Existing is set when the email had already registered.
	Existing bool
}

// Home is the landing page. posts must already be sorted newest first.
func Home(posts []*model.BlogPost) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := HomeData{
			Features: Features,
			Benefits: Benefits,
			Stats:    Stats,
			Glitch:   GlitchWords,
			Posts:    latest(posts, LatestPostsCount),
			Form:     Form{Action: registerAction(ctx)},
		}
		return render(ctx, w, "home", Meta{Path: "/", Schema: organizationSchema(ctx)}, data)
	})
}

func BlogIndex(posts []*model.BlogPost) templ.Component {
	return page("blog", Meta{
		Title:       "Blog",
		Description: "Ideas, product news and community stories for climbing gym owners and staff.",
		Path:        "/blog",
	}, BlogIndexData{Posts: posts})
}

func BlogPost(post *model.BlogPost) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		meta := Meta{
			Title:       post.Title,
			Description: post.Description,
			Path:        post.URL(),
			Type:        "article",
			Schema:      articleSchema(ctx, post),
		}
		if post.HeroImage != nil {
			meta.Image = post.HeroImage.Src
		}
		return render(ctx, w, "post", meta, BlogPostData{Post: post})
	})
}

func ContentPage(p *model.Page) templ.Component {
	return page("page", Meta{
		Title:       p.Title,
		Description: p.Description,
		Path:        p.URL(),
	}, ContentPageData{Page: p})
}

func NotFound() templ.Component {
	return page("notfound", Meta{
		Title:       "Page not found",
		Description: "The page you were looking for does not exist.",
	}, nil)
}

// RegisterForm re-renders the form with the submitted values and errors.
func RegisterForm(values map[string]string, errs validation.Errors) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		form := Form{Action: registerAction(ctx), Values: values, Errors: errs}
		return render(ctx, w, "register", Meta{Title: "Join the Beta", Path: "/register"}, form)
	})
}

func RegisterThanks(name string, existing bool) templ.Component {
	return page("thanks", Meta{Title: "Thanks for registering", Path: "/register"}, ThanksData{Name: name, Existing: existing})
}

func page(name string, meta Meta, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return render(ctx, w, name, meta, data)
	})
}

func render(ctx context.Context, w io.Writer, name string, meta Meta, data any) error {
	t, ok := lookup(name)
	if !ok {
		return fmt.Errorf("ui: unknown page %q", name)
	}
	return templ.FromGoHTML(t.Lookup("layout"), newView(ctx, meta, data)).Render(ctx, w)
}

func registerAction(ctx context.Context) string {
	if cfg := ctxkeys.Config(ctx); cfg != nil && cfg.RegisterAction != "" {
		return cfg.RegisterAction
	}
	return "/register"
}

func latest(posts []*model.BlogPost, n int) []*model.BlogPost {
	if n < len(posts) {
		return posts[:n]
	}
	return posts
}
