package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/circumplex/internal/bootstrap"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/server"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := newLogger(os.Getenv("CIRCUMPLEX_DEBUG") != "")
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	app := bootstrap.New()
	srv, closeTracker, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	app.AddShutdownHook(func(context.Context) error {
		return closeTracker()
	})
	return app.Serve(ctx, srv)
}

// newServer opens the configured storage and returns the API server with a
// function that releases the storage.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*http.Server, func() error, error) {
	t, closeTracker, err := tracker.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("tracker.Open() > %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.Setup(logger, t, cfg.Server.CORS.AllowedOrigins)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}, closeTracker, nil
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("CIRCUMPLEX_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
}
