package service

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/slatesocial/site/internal/storage"
	"golang.org/x/sync/errgroup"
)

const (
	cacheImmutable = "public, max-age=31536000, immutable"
	cacheDocument  = "public, max-age=0, must-revalidate"
	cacheDefault   = "public, max-age=3600"
)

type PublishService struct {
	storage     storage.Storage
	dir         string
	concurrency int
}

type PublishResult struct {
	Files int
	Bytes int64
}

func NewPublishService(store storage.Storage, dir string) *PublishService {
	return &PublishService{
		storage:     store,
		dir:         dir,
		concurrency: 8,
	}
}

// Publish uploads every file of the build output. The first failed upload
// cancels the rest.
func (s *PublishService) Publish(ctx context.Context) (PublishResult, error) {
	var keys []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read build output: %w", err)
	}
	if len(keys) == 0 {
		return PublishResult{}, fmt.Errorf("nothing to publish in %s, run the build first", s.dir)
	}

	var bytes atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, key := range keys {
		g.Go(func() error {
			f, err := os.Open(filepath.Join(s.dir, filepath.FromSlash(key)))
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			err = s.storage.Save(ctx, key, f, ObjectOptions(key))
			if err != nil {
				return err
			}
			bytes.Add(info.Size())
			slog.Debug("published", "key", key)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return PublishResult{}, err
	}

	return PublishResult{Files: len(keys), Bytes: bytes.Load()}, nil
}

// ObjectOptions picks content type and cache policy for a published key.
func ObjectOptions(key string) storage.PutOptions {
	ext := strings.ToLower(path.Ext(key))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	cache := cacheDefault
	switch {
	case strings.HasPrefix(key, "_assets/"):
		cache = cacheImmutable
	case ext == ".html" || ext == ".xml" || ext == ".txt":
		cache = cacheDocument
	}

	return storage.PutOptions{ContentType: contentType, CacheControl: cache}
}
