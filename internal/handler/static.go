package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/slatesocial/site/internal/service"
)

// StaticHandler serves a built site from disk with clean URLs:
// /blog is answered from blog/index.html, /terms from terms/index.html.
// Unknown paths get 404.html with a 404 status.
type StaticHandler struct {
	dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	for _, name := range candidates(clean) {
		if h.serveFile(w, r, name, http.StatusOK) {
			return
		}
	}

	h.NotFound(w, r)
}

// NotFound writes the site's 404 page.
func (h *StaticHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if h.serveFile(w, r, "404.html", http.StatusNotFound) {
		return
	}
	http.Error(w, "404 page not found", http.StatusNotFound)
}

// candidates lists the files a clean URL may map to, relative to the site root.
func candidates(clean string) []string {
	if clean == "/" {
		return []string{"index.html"}
	}
	name := strings.TrimPrefix(clean, "/")
	if path.Ext(name) != "" {
		return []string{name, name + "/index.html"}
	}
	return []string{name + "/index.html", name + ".html", name}
}

// serveFile reports whether name existed as a regular file and was served.
func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string, status int) bool {
	// hidden files (dotfiles, staging leftovers) are never served
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}

	f, err := os.OpenInRoot(h.dir, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("static open failed", "name", name, "error", err)
		}
		return false
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	opts := service.ObjectOptions(name)
	w.Header().Set("Content-Type", opts.ContentType)
	w.Header().Set("Cache-Control", opts.CacheControl)

	if status != http.StatusOK {
		w.WriteHeader(status)
		if r.Method != http.MethodHead {
			_, _ = f.WriteTo(w)
		}
		return true
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
	return true
}
