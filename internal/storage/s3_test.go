package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method       string
	path         string
	contentType  string
	cacheControl string
	body         string
}

func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			method:       r.Method,
			path:         r.URL.Path,
			contentType:  r.Header.Get("Content-Type"),
			cacheControl: r.Header.Get("Cache-Control"),
			body:         string(body),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func TestS3Storage(t *testing.T) {
	srv, requests := fakeS3(t)
	ctx := context.Background()

	s, err := NewS3Storage(ctx, S3Config{
		Region:    "us-east-1",
		Bucket:    "slate-site",
		AccessKey: "test",
		SecretKey: "secret",
		Endpoint:  srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/slate-site/blog/index.html", s.URL("blog/index.html"))

	err = s.Save(ctx, "blog/index.html", strings.NewReader("<h1>Blog</h1>"), PutOptions{
		ContentType:  "text/html; charset=utf-8",
		CacheControl: "public, max-age=0, must-revalidate",
	})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "old.html"))

	reqs := requests()
	require.Len(t, reqs, 3)

	assert.Equal(t, http.MethodHead, reqs[0].method)
	assert.Equal(t, "/slate-site", reqs[0].path)

	put := reqs[1]
	assert.Equal(t, http.MethodPut, put.method)
	assert.Equal(t, "/slate-site/blog/index.html", put.path)
	assert.Equal(t, "text/html; charset=utf-8", put.contentType)
	assert.Equal(t, "public, max-age=0, must-revalidate", put.cacheControl)
	assert.Contains(t, put.body, "<h1>Blog</h1>")

	assert.Equal(t, http.MethodDelete, reqs[2].method)
	assert.Equal(t, "/slate-site/old.html", reqs[2].path)
}
