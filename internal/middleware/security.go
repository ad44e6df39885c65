package middleware

import (
	"net/http"
	"strings"

	"github.com/slatesocial/site/internal/config"
)

// SecurityHeaders sets CSP and friends. Every script on the site is an
// external file, so script-src needs no nonce; analytics hosts are added
// when configured.
func SecurityHeaders(cfg *config.Config) func(http.Handler) http.Handler {
	csp := contentSecurityPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", csp)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if cfg.IsProduction() {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

func contentSecurityPolicy(cfg *config.Config) string {
	scripts := []string{"'self'"}
	connect := []string{"'self'"}
	if cfg.GoogleAnalyticsID != "" {
		scripts = append(scripts, "https://www.googletagmanager.com")
		connect = append(connect, "https://www.google-analytics.com", "https://*.google-analytics.com")
	}
	if cfg.PlausibleDomain != "" {
		scripts = append(scripts, "https://"+cfg.PlausibleHost)
		connect = append(connect, "https://"+cfg.PlausibleHost)
	}

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(scripts, " "),
		"style-src 'self'",
		"img-src 'self' data:",
		"font-src 'self'",
		"connect-src " + strings.Join(connect, " "),
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self' " + formOrigin(cfg.RegisterAction),
	}
	return strings.TrimSpace(strings.Join(directives, "; "))
}

// formOrigin returns the scheme+host of an absolute form action, or "".
func formOrigin(action string) string {
	scheme, rest, ok := strings.Cut(action, "://")
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	return scheme + "://" + host
}
