package middleware

import (
	"net/http"

	"github.com/slatesocial/site/internal/config"
	"github.com/slatesocial/site/internal/ctxkeys"
)

// Config adds the sanitized site configuration to the request context
// so server-rendered pages share the header and footer of the static build.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), safe)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
