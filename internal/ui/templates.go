package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync/atomic"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"cn":     twmerge.Merge,
	"upper":  upper,
	"icon":   icon,
	"accent": accent,
	"join":   strings.Join,
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"isoDate": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"fieldClass": fieldClass,
}

// pageSets maps a page name to the layout + partials + that page's "main".
var pageSets atomic.Pointer[map[string]*template.Template]

func init() {
	sets, err := parseTemplates(templateFS)
	if err != nil {
		panic(err)
	}
	pageSets.Store(&sets)
}

// LoadTemplates replaces the embedded templates with those under
// templates/ in fsys. The dev server uses it to pick up edits without a
// restart. On error the current templates stay in place.
func LoadTemplates(fsys fs.FS) error {
	sets, err := parseTemplates(fsys)
	if err != nil {
		return err
	}
	pageSets.Store(&sets)
	return nil
}

func lookup(name string) (*template.Template, bool) {
	t, ok := (*pageSets.Load())[name]
	return t, ok
}

func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	sets := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err = t.ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		sets[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return sets, nil
}

// A Caser is stateful, so each call gets its own.
func upper(s string) string {
	return cases.Upper(language.English).String(s)
}

const inputClass = "mt-2 block w-full rounded-lg border border-slate-300 bg-white px-4 py-3 text-slate-900 shadow-sm focus:border-sky-500 focus:outline-none focus:ring-2 focus:ring-sky-500/40 dark:border-slate-700 dark:bg-slate-900 dark:text-slate-100"

// fieldClass swaps the border colour of a field that failed validation.
func fieldClass(invalid bool) string {
	if invalid {
		return twmerge.Merge(inputClass, "border-red-500 focus:border-red-500 focus:ring-red-500/40 dark:border-red-500")
	}
	return inputClass
}
