package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mivideo/internal/config"
	"mivideo/internal/language"
	"mivideo/internal/loader"
	"mivideo/internal/mediaapi"
	"mivideo/internal/mediaapi/kaltura"
	"mivideo/internal/mediaapi/mivideo"
)

// newAPIClient builds the backend selected by api.backend. The mivideo
// backend performs its token exchange here, so a bad credential fails before
// any media calls are made.
func (c *commandContext) newAPIClient(ctx context.Context) (mediaapi.API, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}

	switch cfg.API.Backend {
	case "mivideo":
		return mivideo.New(ctx, mivideo.Config{
			Host:       cfg.API.Host,
			AuthID:     cfg.API.AuthID,
			AuthSecret: cfg.API.AuthSecret,
			Version:    cfg.API.Version,
			HTTPClient: httpClient,
			Logger:     logger,
		})
	case "kaltura":
		return kaltura.New(kaltura.Config{
			Host:           cfg.Kaltura.Host,
			SessionToken:   cfg.Kaltura.SessionToken,
			CategoryPrefix: cfg.Kaltura.CategoryPrefix,
			HTTPClient:     httpClient,
			Logger:         logger,
		})
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.API.Backend)
	}
}

// newLoader assembles the document loader from configuration plus any
// command-line overrides already applied to cfg by the caller.
func (c *commandContext) newLoader(ctx context.Context, overrides func(*loader.Config)) (*loader.Loader, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	api, err := c.newAPIClient(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}

	loaderCfg := loader.Config{
		API:          api,
		CourseID:     cfg.Course.ID,
		UserID:       cfg.Course.UserID,
		URLTemplate:  cfg.Loader.URLTemplate,
		ChunkSeconds: cfg.Loader.ChunkSeconds,
		SpanGaps:     cfg.Loader.SpanGaps,
		Logger:       logger,
	}
	if len(cfg.Loader.Languages) > 0 {
		loaderCfg.Languages = language.NewSet(cfg.Loader.Languages...)
	}
	if overrides != nil {
		overrides(&loaderCfg)
	}
	return loader.New(loaderCfg)
}

func courseIdentity(cfg *config.Config) (courseID, userID string) {
	return cfg.Course.ID, cfg.Course.UserID
}
