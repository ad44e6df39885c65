package routes

import (
	"context"
	"net/http"

	"github.com/slatesocial/site/internal/app"
	"github.com/slatesocial/site/internal/handler"
	"github.com/slatesocial/site/internal/middleware"
)

// SetupRoutes serves the built site and the registration endpoint.
// Background work started here stops when ctx is cancelled.
func SetupRoutes(ctx context.Context, app *app.App) http.Handler {
	// Handlers
	static := handler.NewStaticHandler(app.Cfg.OutputDir)
	register := handler.NewRegisterHandler(app.RegistrationService)

	mux := http.NewServeMux()

	// Registration (rate limited per client IP; proxy headers only from TRUSTED_PROXIES)
	limiter := middleware.NewRateLimiter(ctx, app.Cfg.RegisterRateLimit, app.Cfg.RegisterRateWindow)
	mux.HandleFunc("POST /register", middleware.RateLimit(limiter, app.Cfg.TrustedProxies)(register.Submit))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	// Everything else is the built site, 404.html included
	mux.Handle("/", static)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),          // server-rendered form pages read it from ctx
		middleware.SecurityHeaders(app.Cfg), // CSP, frame and sniffing protection
		middleware.RequestLogging,
		middleware.WithURLPath,
	)
}
