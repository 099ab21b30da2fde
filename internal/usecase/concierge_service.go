package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/elevatedliving/storefront/internal/domain"
	"github.com/elevatedliving/storefront/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// FallbackRecommendation is returned whenever the remote call cannot complete
const FallbackRecommendation = "Our concierge is currently busy, but we recommend our Signature Gold Rim glasses for a timeless choice."

// ConciergeServiceConfig holds configuration for the concierge service
type ConciergeServiceConfig struct {
	// Temperature is the sampling temperature; nil means DefaultTemperature.
	// Zero is a valid setting.
	Temperature *float32
}

// ConciergeService asks the text generator for gift ideas. It keeps no
// session state and takes no lock: concurrent callers each get their own
// outbound request, and suppressing duplicates is the caller's job.
type ConciergeService struct {
	generator   domain.TextGenerator
	metrics     *metrics.Registry
	temperature float32
}

// NewConciergeService creates a new concierge service with dependencies
func NewConciergeService(
	generator domain.TextGenerator,
	registry *metrics.Registry,
	config ConciergeServiceConfig,
) *ConciergeService {
	temperature := DefaultTemperature
	if config.Temperature != nil {
		temperature = *config.Temperature
	}

	return &ConciergeService{
		generator:   generator,
		metrics:     registry,
		temperature: temperature,
	}
}

// RequestRecommendation returns generated gift advice, or FallbackRecommendation
// when anything goes wrong. Failures are logged, never returned.
func (s *ConciergeService) RequestRecommendation(ctx context.Context, preferences string) (advice string) {
	defer func() {
		if r := recover(); r != nil {
			s.recordFailure(ctx, fmt.Errorf("%w: panic: %v", domain.ErrRemoteService, r))
			advice = FallbackRecommendation
		}
	}()

	text, err := s.recommend(ctx, preferences)
	if err != nil {
		s.recordFailure(ctx, err)
		return FallbackRecommendation
	}

	s.metrics.Inc(ctx, metrics.ConciergeRequestsTotal, map[string]string{
		"outcome": metrics.ConciergeOutcomeSuccess,
	}, 1)

	return text
}

// recommend performs exactly one generator call and reports its outcome
func (s *ConciergeService) recommend(ctx context.Context, preferences string) (string, error) {
	if s.generator == nil {
		return "", domain.ErrMissingCredential
	}

	text, err := s.generator.Generate(ctx, BuildGiftRequest(preferences, s.temperature))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", domain.ErrEmptyResponse
	}

	return text, nil
}

func (s *ConciergeService) recordFailure(ctx context.Context, err error) {
	logger := zerolog.Ctx(ctx)

	if errors.Is(err, domain.ErrMissingCredential) {
		logger.Warn().
			Err(err).
			Str("reason", "missing_credential").
			Msg("concierge fallback: no API key configured")
	} else {
		logger.Error().
			Err(err).
			Str("reason", "remote_failure").
			Msg("concierge fallback: text generation failed")
	}

	s.metrics.Inc(ctx, metrics.ConciergeRequestsTotal, map[string]string{
		"outcome": metrics.ConciergeOutcomeFallback,
	}, 1)
}
