package ctxkeys

import (
	"context"
	"time"

	"github.com/slatesocial/site/internal/config"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	URLPathKey   contextKey = "url_path"
	ConfigKey    contextKey = "config"
	BuildTimeKey contextKey = "build_time"
)

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

// BuildTime is the instant pages are rendered at; the current time if unset.
func BuildTime(ctx context.Context) time.Time {
	t, ok := ctx.Value(BuildTimeKey).(time.Time)
	if !ok {
		return time.Now()
	}
	return t
}

func WithBuildTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, BuildTimeKey, t)
}
