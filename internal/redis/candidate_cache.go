package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type EligibleSource interface {
	ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error)
}

// CandidateCache keeps the eligible technicians of a subcategory for a short
// TTL so radius expansion does not hit the database once per step. Redis
// failures fall through to the source.
type CandidateCache struct {
	client *redis.Client
	source EligibleSource
	ttl    time.Duration
	logger *slog.Logger
}

func NewCandidateCache(client *redis.Client, source EligibleSource, ttl time.Duration, logger *slog.Logger) *CandidateCache {
	return &CandidateCache{client: client, source: source, ttl: ttl, logger: logger}
}

func candidateKey(subcategoryID uuid.UUID) string {
	return "technicians:eligible:" + subcategoryID.String()
}

func (c *CandidateCache) ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error) {
	key := candidateKey(subcategoryID)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []domain.Technician
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("candidate cache entry corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("candidate cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	technicians, err := c.source.ListEligible(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(technicians)
	if err != nil {
		return technicians, nil
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("candidate cache write failed", slog.String("key", key), slog.Any("error", err))
	}
	return technicians, nil
}

