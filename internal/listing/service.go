package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rentradar/rentradar/internal/domain"
	"github.com/rentradar/rentradar/internal/rent"
)

// Provider is the subset of the listing API the search service uses.
type Provider interface {
	SearchListings(ctx context.Context, location string, limit int) ([]domain.Property, error)
}

// Service answers location searches cache-first and fills in rent
// estimates for listings the provider returned without one.
type Service struct {
	provider Provider
	cache    Cache
	rents    *rent.Estimator
	limit    int
}

// NewService creates a listing search service.
func NewService(provider Provider, cache Cache, rents *rent.Estimator, limit int) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		rents:    rents,
		limit:    limit,
	}
}

// normalizeQuery canonicalizes a location so "Austin, TX" and "austin,tx"
// share a cache entry.
func normalizeQuery(location string) string {
	parts := strings.Split(strings.ToLower(location), ",")
	for i := range parts {
		parts[i] = strings.Join(strings.Fields(parts[i]), " ")
	}
	return strings.Join(parts, ",")
}

// Search returns properties for a location, serving from the cache when
// fresh and fetching from the provider otherwise.
func (s *Service) Search(ctx context.Context, location string) ([]domain.Property, error) {
	key := normalizeQuery(location)
	if key == "" {
		return nil, fmt.Errorf("empty search location")
	}

	if props, ok := s.cache.Get(key); ok {
		slog.Debug("listing search: cache hit", "location", key, "count", len(props))
		return props, nil
	}
	return s.Refresh(ctx, key)
}

// Refresh fetches a location from the provider, bypassing the cache, and
// stores the result. The refresh queue calls this for stale entries.
func (s *Service) Refresh(ctx context.Context, location string) ([]domain.Property, error) {
	key := normalizeQuery(location)

	props, err := s.provider.SearchListings(ctx, key, s.limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", key, err)
	}

	for i := range props {
		if props[i].RentEstimate.IsZero() {
			estimate, source := s.rents.Estimate(props[i].Price, props[i].Bedrooms, props[i].RentEstimate)
			props[i].RentEstimate = estimate
			props[i].RentSource = source
		}
	}

	s.cache.Set(key, props)
	slog.Info("listing search: refreshed", "location", key, "count", len(props))
	return props, nil
}

// CachedLocations lists the locations currently held in the cache, for
// the background refresh worker.
func (s *Service) CachedLocations() []string {
	return s.cache.Keys()
}
