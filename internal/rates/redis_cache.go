package rates

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	portssvc "github.com/ndolodev/bureau_change_app/internal/core/ports/services"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

const cacheKeyPrefix = "rates:"

// cachedSource wraps a RateSource with a Redis read-through cache. Cache
// problems degrade to the underlying source; a Redis outage never breaks a
// rate lookup.
type cachedSource struct {
	inner  portssvc.RateSource
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSource wraps a RateSource with Redis caching.
func NewCachedSource(inner portssvc.RateSource, client *redis.Client, ttl time.Duration) portssvc.RateSource {
	return &cachedSource{inner: inner, client: client, ttl: ttl}
}

var _ portssvc.RateSource = (*cachedSource)(nil)

// CurrentRates implements portssvc.RateSource.
func (s *cachedSource) CurrentRates(ctx context.Context, currencyCode string) (*domain.RateQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	key := cacheKeyPrefix + currencyCode

	data, err := s.client.Get(ctx, key).Result()
	if err == nil {
		var quote domain.RateQuote
		if jsonErr := json.Unmarshal([]byte(data), &quote); jsonErr == nil {
			return &quote, nil
		}
		// Corrupt entry: fall through and overwrite below.
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("Rate cache read failed", slog.String("currency", currencyCode), slog.String("error", err.Error()))
	}

	quote, err := s.inner.CurrentRates(ctx, currencyCode)
	if err != nil || quote == nil {
		return quote, err
	}

	if payload, jsonErr := json.Marshal(quote); jsonErr == nil {
		if setErr := s.client.Set(ctx, key, payload, s.ttl).Err(); setErr != nil {
			logger.Warn("Rate cache write failed", slog.String("currency", currencyCode), slog.String("error", setErr.Error()))
		}
	}
	return quote, nil
}
