package main

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/circumplex/internal/client"
	"github.com/at-ishikawa/circumplex/internal/config"
	"github.com/at-ishikawa/circumplex/internal/tracker"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openService returns the HTTP client when a remote server is configured and
// a local tracker otherwise. The returned function releases the service.
func openService(ctx context.Context, cfg *config.Config) (tracker.Service, func() error, error) {
	baseURL := remoteURL
	if baseURL == "" {
		baseURL = cfg.Remote.BaseURL
	}
	if baseURL != "" {
		c := client.NewClient(
			baseURL,
			time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
			uint(cfg.Remote.MaxRetryAttempts),
		)
		return c, func() error { return nil }, nil
	}

	t, closeStore, err := tracker.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("tracker.Open() > %w", err)
	}
	return t, closeStore, nil
}

// withService loads the configuration, opens the service and runs fn with it.
func withService(ctx context.Context, fn func(cfg *config.Config, svc tracker.Service) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeService, err := openService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeService()
	}()
	return fn(cfg, svc)
}

func parseIndex(arg string) (int, error) {
	var index int
	if _, err := fmt.Sscan(arg, &index); err != nil || index < 0 {
		return 0, fmt.Errorf("invalid entry index %q", arg)
	}
	return index, nil
}
