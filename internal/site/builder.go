package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
	"github.com/slatesocial/site/internal/config"
	"github.com/slatesocial/site/internal/ctxkeys"
	"github.com/slatesocial/site/internal/imaging"
	"github.com/slatesocial/site/internal/model"
	"github.com/slatesocial/site/internal/service"
	"github.com/slatesocial/site/internal/ui"
	"golang.org/x/sync/errgroup"
)

// ImagePrefix is where processed content images are published.
const ImagePrefix = "/_assets/"

// reservedSlugs are top-level paths content pages cannot claim.
var reservedSlugs = map[string]bool{
	"blog": true, "register": true, "assets": true, "_assets": true,
	"404": true, "rss.xml": true, "sitemap.xml": true, "robots.txt": true,
}

var ErrBrokenLinks = errors.New("broken links")

type Builder struct {
	cfg     *config.Config
	blog    *service.BlogService
	pages   *service.PageService
	sitemap *service.SitemapService
	feed    *service.FeedService
	assets  fs.FS

	// Now stamps the build; the footer year and sitemap use it.
	Now func() time.Time
}

type Result struct {
	Dir      string
	Pages    int
	Posts    int
	Images   imaging.Stats
	Bytes    int64
	Issues   []LinkIssue
	Duration time.Duration
}

func NewBuilder(cfg *config.Config, blog *service.BlogService, pages *service.PageService, assets fs.FS) *Builder {
	return &Builder{
		cfg:     cfg,
		blog:    blog,
		pages:   pages,
		sitemap: service.NewSitemapService(cfg.SiteURL),
		feed:    service.NewFeedService(cfg.SiteURL, cfg.SiteName+" Blog", cfg.SiteDescription),
		assets:  assets,
		Now:     time.Now,
	}
}

// Build validates all content, renders the site into a staging directory
// and swaps it into OutputDir. On any error OutputDir is left as it was.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := b.Now()

	posts, err := b.blog.Posts()
	if err != nil {
		return nil, err
	}
	pages, err := b.pages.Pages()
	if err != nil {
		return nil, err
	}
	for _, p := range pages {
		if reservedSlugs[p.Slug] {
			return nil, fmt.Errorf("page %q uses a reserved path", p.Slug)
		}
	}
	jobs, err := pageJobs(posts, pages)
	if err != nil {
		return nil, err
	}

	out := filepath.Clean(b.cfg.OutputDir)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, err
	}
	stage, err := os.MkdirTemp(filepath.Dir(out), "."+filepath.Base(out)+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()
	if err := os.Chmod(stage, 0o755); err != nil {
		return nil, err
	}

	if err := b.copyAssets(stage); err != nil {
		return nil, err
	}
	if err := copyDir(b.cfg.PublicPath, stage); err != nil {
		return nil, fmt.Errorf("failed to copy public files: %w", err)
	}

	var images []*model.Image
	for _, p := range posts {
		images = append(images, p.Images()...)
	}
	proc := &imaging.Processor{
		OutDir:    filepath.Join(stage, filepath.FromSlash(strings.Trim(ImagePrefix, "/"))),
		URLPrefix: ImagePrefix,
		MaxWidth:  b.cfg.ImageMaxWidth,
	}
	imgStats, err := proc.Process(ctx, images)
	if err != nil {
		return nil, err
	}

	rendered, err := b.renderPages(ctx, stage, start, jobs)
	if err != nil {
		return nil, err
	}
	if err := b.writeFeeds(stage, start, posts, pages); err != nil {
		return nil, err
	}

	issues, err := CheckLinks(stage)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		slog.Warn("link check", "page", issue.Page, "ref", issue.Ref, "problem", issue.Problem)
	}
	if len(issues) > 0 && b.cfg.StrictLinks {
		return nil, fmt.Errorf("%w: %d issue(s), first: %s", ErrBrokenLinks, len(issues), issues[0])
	}

	size, err := dirSize(stage)
	if err != nil {
		return nil, err
	}
	if err := swap(stage, out); err != nil {
		return nil, err
	}

	res := &Result{
		Dir:      out,
		Pages:    rendered,
		Posts:    len(posts),
		Images:   imgStats,
		Bytes:    size,
		Issues:   issues,
		Duration: b.Now().Sub(start),
	}
	slog.Info("site built",
		"dir", out,
		"pages", res.Pages,
		"posts", res.Posts,
		"images", imgStats.Files,
		"resized", imgStats.Resized,
		"size", humanize.Bytes(uint64(size)),
		"duration", res.Duration.Round(time.Millisecond),
	)
	return res, nil
}

type pageJob struct {
	urlPath string
	file    string
	c       templ.Component
}

// pageJobs lists every page to render. Two pages writing the same file,
// or a file outside the output directory, is an error.
func pageJobs(posts []*model.BlogPost, pages []*model.Page) ([]pageJob, error) {
	jobs := []pageJob{
		{"/", "index.html", ui.Home(posts)},
		{"/blog", "blog/index.html", ui.BlogIndex(posts)},
		{"/404", "404.html", ui.NotFound()},
	}
	for _, p := range posts {
		jobs = append(jobs, pageJob{p.URL(), path.Join("blog", p.Slug, "index.html"), ui.BlogPost(p)})
	}
	for _, p := range pages {
		jobs = append(jobs, pageJob{p.URL(), path.Join(p.Slug, "index.html"), ui.ContentPage(p)})
	}

	owners := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if !filepath.IsLocal(filepath.FromSlash(job.file)) {
			return nil, fmt.Errorf("%s: output path %q escapes the output directory", job.urlPath, job.file)
		}
		if first, dup := owners[job.file]; dup {
			return nil, fmt.Errorf("%s and %s both render %s", first, job.urlPath, job.file)
		}
		owners[job.file] = job.urlPath
	}
	return jobs, nil
}

func (b *Builder) renderPages(ctx context.Context, stage string, now time.Time, jobs []pageJob) (int, error) {
	base := ctxkeys.WithConfig(ctx, b.cfg.Sanitized())
	base = ctxkeys.WithBuildTime(base, now)

	var count atomic.Int64
	g, gctx := errgroup.WithContext(base)
	g.SetLimit(8)
	for _, job := range jobs {
		g.Go(func() error {
			var buf bytes.Buffer
			if err := job.c.Render(ctxkeys.WithURLPath(gctx, job.urlPath), &buf); err != nil {
				return fmt.Errorf("render %s: %w", job.urlPath, err)
			}
			if err := writeFile(filepath.Join(stage, filepath.FromSlash(job.file)), buf.Bytes()); err != nil {
				return err
			}
			count.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(count.Load()), nil
}

func (b *Builder) writeFeeds(stage string, now time.Time, posts []*model.BlogPost, pages []*model.Page) error {
	sitemap, err := b.sitemap.GenerateSitemap(posts, pages)
	if err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}
	rss, err := b.feed.GenerateRSS(posts)
	if err != nil {
		return fmt.Errorf("rss: %w", err)
	}

	files := map[string][]byte{
		"sitemap.xml": sitemap,
		"rss.xml":     rss,
	}
	// public/robots.txt wins if present
	if _, err := os.Stat(filepath.Join(stage, "robots.txt")); errors.Is(err, fs.ErrNotExist) {
		files["robots.txt"] = Robots(b.cfg.SiteURL)
	}
	for name, data := range files {
		if err := writeFile(filepath.Join(stage, name), data); err != nil {
			return err
		}
	}
	return nil
}

// Robots is the default robots.txt.
func Robots(siteURL string) []byte {
	return []byte("User-agent: *\nAllow: /\n\nSitemap: " + strings.TrimSuffix(siteURL, "/") + "/sitemap.xml\n")
}

func (b *Builder) copyAssets(stage string) error {
	if b.assets == nil {
		return nil
	}
	if _, err := fs.Stat(b.assets, "css/output.css"); err != nil {
		slog.Warn("stylesheet missing, run: go run ./cmd/do gen", "file", "assets/css/output.css")
	}
	return fs.WalkDir(b.assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.Contains(p, "/") {
			return nil
		}
		data, err := fs.ReadFile(b.assets, p)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(stage, "assets", filepath.FromSlash(p)), data)
	})
}

// copyDir copies src into dst. A missing src is not an error.
func copyDir(src, dst string) error {
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dst, rel), 0o755)
		}
		return copyFile(p, filepath.Join(dst, rel))
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeFile(name string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0o644)
}

func dirSize(dir string) (int64, error) {
	var size int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}

// swap replaces out with stage. The previous output is kept aside until
// the rename succeeds so a failure can restore it.
func swap(stage, out string) error {
	old := out + ".old"
	_ = os.RemoveAll(old)

	hadOld := false
	if _, err := os.Stat(out); err == nil {
		if err := os.Rename(out, old); err != nil {
			return fmt.Errorf("failed to move previous output: %w", err)
		}
		hadOld = true
	}
	if err := os.Rename(stage, out); err != nil {
		if hadOld {
			_ = os.Rename(old, out)
		}
		return fmt.Errorf("failed to publish build: %w", err)
	}
	return os.RemoveAll(old)
}
