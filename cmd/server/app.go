package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/elevatedliving/storefront/config"
	httpDelivery "github.com/elevatedliving/storefront/internal/delivery/http"
	"github.com/elevatedliving/storefront/internal/infrastructure/catalog"
	"github.com/elevatedliving/storefront/internal/infrastructure/gemini"
	"github.com/elevatedliving/storefront/internal/infrastructure/metrics"
	"github.com/elevatedliving/storefront/internal/logging"
	"github.com/elevatedliving/storefront/internal/usecase"
	"github.com/rs/zerolog"
)

// application holds the wired components shared by every subcommand
type application struct {
	cfg       *config.Config
	logger    zerolog.Logger
	metrics   *metrics.Registry
	catalog   *usecase.CatalogService
	concierge *usecase.ConciergeService
}

// newApplication wires the components for an already validated cfg. Logs go
// to logOut so command output on stdout stays clean.
func newApplication(ctx context.Context, cfg *config.Config, logOut io.Writer) (*application, error) {
	logger := logging.SetupWriter(logOut, cfg.Log.Level, cfg.Log.Format)

	repo, err := catalog.NewStaticRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	client, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:            cfg.Gemini.APIKey,
		Model:             cfg.Gemini.Model,
		BaseURL:           cfg.Gemini.BaseURL,
		Timeout:           cfg.Gemini.Timeout,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		Burst:             cfg.Gemini.Burst,
	})
	if err != nil {
		return nil, err
	}

	if client.Configured() {
		logger.Info().Str("model", client.Model()).Msg("gemini client configured")
	} else {
		logger.Warn().Msg("no API key configured, the concierge will answer with the fallback recommendation")
	}

	reg := metrics.NewRegistry()
	temperature := cfg.Gemini.Temperature

	return &application{
		cfg:     cfg,
		logger:  logger,
		metrics: reg,
		catalog: usecase.NewCatalogService(repo),
		concierge: usecase.NewConciergeService(client, reg, usecase.ConciergeServiceConfig{
			Temperature: &temperature,
		}),
	}, nil
}

// router builds the HTTP surface together with the per-client limiter the
// caller must close.
func (a *application) router() (*httpDelivery.ClientRateLimiter, http.Handler, error) {
	limiter := httpDelivery.NewClientRateLimiter(a.cfg.RateLimit.PerIP, a.cfg.RateLimit.Burst, a.cfg.RateLimit.IdleTTL)
	handler := httpDelivery.NewHandler(a.catalog, a.concierge)

	engine, err := httpDelivery.SetupRouter(a.cfg, handler, httpDelivery.Dependencies{
		Metrics: a.metrics,
		Limiter: limiter,
	})
	if err != nil {
		limiter.Close()
		return nil, nil, err
	}
	return limiter, engine, nil
}
