package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/slatesocial/site/internal/app"
	"github.com/slatesocial/site/internal/routes"
	"github.com/slatesocial/site/internal/site"
	"github.com/slatesocial/site/internal/ui"
	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Build, serve and rebuild the site on every change",
		Long: `Builds the site, serves it with the registration backend and
watches content, public files, assets and templates. Templates and assets
are read from disk so edits show up without restarting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd.Context(), port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default PORT)")
	return cmd
}

func runDev(ctx context.Context, port string) error {
	cfg := loadConfig()
	if port != "" {
		cfg.Port = port
	}
	if !cfg.IsDevelopment() {
		slog.Warn("dev server running outside development", "env", cfg.AppEnv)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Builder = site.NewBuilder(cfg, a.BlogService, a.PageService, os.DirFS("assets"))

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()

		if err := ui.LoadTemplates(os.DirFS("internal/ui")); err != nil {
			slog.Error("template reload failed", "error", err)
			return
		}
		res, err := a.Builder.Build(ctx)
		if err != nil {
			// Last good build stays in place.
			slog.Error("rebuild failed", "error", err)
			return
		}
		slog.Info("rebuilt", "pages", res.Pages, "duration", res.Duration.Round(time.Millisecond))
	}
	rebuild()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(ctx, a),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		roots := []string{cfg.ContentPath, cfg.PublicPath, "assets", "internal/ui/templates"}
		errCh <- site.Watch(ctx, roots, 300*time.Millisecond, rebuild)
	}()
	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	fmt.Printf("serving http://localhost:%s (ctrl-c to stop)\n", cfg.Port)

	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("server shutdown failed", "error", shutdownErr)
	}
	return err
}
