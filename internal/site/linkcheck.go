package site

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkIssue is a problem found in a built page.
type LinkIssue struct {
	Page    string
	Ref     string
	Problem string
}

func (i LinkIssue) String() string {
	if i.Ref == "" {
		return fmt.Sprintf("%s: %s", i.Page, i.Problem)
	}
	return fmt.Sprintf("%s: %s: %s", i.Page, i.Ref, i.Problem)
}

type pageInfo struct {
	urlPath string
	ids     map[string]bool
	h1      int
	links   []string
	images  []string
	noAlt   []string
}

// CheckLinks walks every HTML file under dir and reports internal links
// and fragments that do not resolve, images without alt text, and pages
// that do not have exactly one h1.
func CheckLinks(dir string) ([]LinkIssue, error) {
	pages := map[string]*pageInfo{}

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		info, err := scanPage(p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", rel, err)
		}
		info.urlPath = URLPath(filepath.ToSlash(rel))
		pages[info.urlPath] = info
		return nil
	})
	if err != nil {
		return nil, err
	}

	var issues []LinkIssue
	for _, pg := range pages {
		if pg.h1 != 1 {
			issues = append(issues, LinkIssue{Page: pg.urlPath, Problem: fmt.Sprintf("expected one h1, found %d", pg.h1)})
		}
		for _, src := range pg.noAlt {
			issues = append(issues, LinkIssue{Page: pg.urlPath, Ref: src, Problem: "image without alt attribute"})
		}
		for _, ref := range pg.images {
			if problem := resolve(dir, pages, pg.urlPath, ref); problem != "" {
				issues = append(issues, LinkIssue{Page: pg.urlPath, Ref: ref, Problem: problem})
			}
		}
		for _, ref := range pg.links {
			if problem := resolve(dir, pages, pg.urlPath, ref); problem != "" {
				issues = append(issues, LinkIssue{Page: pg.urlPath, Ref: ref, Problem: problem})
			}
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Page != issues[j].Page {
			return issues[i].Page < issues[j].Page
		}
		return issues[i].Ref < issues[j].Ref
	})
	return issues, nil
}

// URLPath maps an output file to the clean URL it is served at:
// index.html -> /, blog/index.html -> /blog, 404.html -> /404.html.
func URLPath(rel string) string {
	if rel == "index.html" {
		return "/"
	}
	if strings.HasSuffix(rel, "/index.html") {
		return "/" + strings.TrimSuffix(rel, "/index.html")
	}
	return "/" + rel
}

func scanPage(file string) (*pageInfo, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	info := &pageInfo{ids: map[string]bool{}}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				info.ids[id] = true
			}
			switch n.DataAtom {
			case atom.H1:
				info.h1++
			case atom.A:
				if href, ok := attrOK(n, "href"); ok {
					info.links = append(info.links, href)
				}
			case atom.Img:
				src := attr(n, "src")
				if _, ok := attrOK(n, "alt"); !ok {
					info.noAlt = append(info.noAlt, src)
				}
				if src != "" {
					info.images = append(info.images, src)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return info, nil
}

var base = &url.URL{Scheme: "http", Host: "site.invalid"}

// resolve returns a problem description, or "" if ref resolves or is
// not an internal reference.
func resolve(dir string, pages map[string]*pageInfo, from, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "malformed URL"
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}

	target := base.ResolveReference(&url.URL{Path: from}).ResolveReference(u)
	if target.Host != base.Host {
		return ""
	}

	p := target.Path
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	if pg, ok := pages[p]; ok {
		if target.Fragment != "" && !pg.ids[target.Fragment] {
			return "missing fragment #" + target.Fragment
		}
		return ""
	}

	file := filepath.Join(dir, filepath.FromSlash(path.Clean(p)))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "not found"
	}
	return ""
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}
