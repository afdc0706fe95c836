// Package source orders the three recommendation data sources into an
// explicit fallback cascade: remote feed, bundled collections, generated
// mock data. The cascade guarantees the swipe surface is never empty.
package source

import (
	"context"
	"log/slog"

	"github.com/Charliemorrone/FittedAI/internal/models"
)

// Tier identifies which data source produced a batch. The tier chosen at
// session start stays active for the whole session; auto-refresh only ever
// re-queries the remote tier.
type Tier string

const (
	TierRemote Tier = "remote"
	TierStatic Tier = "static"
	TierMock   Tier = "mock"
)

// Provider is one data source in the cascade. TryFetch returns the initial
// batch for the given preferences; an error or empty result moves the
// cascade to the next provider.
type Provider interface {
	Tier() Tier
	TryFetch(ctx context.Context, prefs models.UserPreferences) ([]models.OutfitRecommendation, error)
}

// Resolver walks an ordered provider list and returns the first non-empty
// batch.
type Resolver struct {
	providers []Provider
}

// NewResolver builds a resolver over the given providers, tried in order.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

// Resolve returns the first provider's non-empty batch along with its tier.
// With the mock provider last the cascade cannot come back empty; the error
// return exists only for a resolver misconfigured without it.
func (r *Resolver) Resolve(ctx context.Context, prefs models.UserPreferences) (Tier, []models.OutfitRecommendation, error) {
	var lastErr error
	for _, p := range r.providers {
		batch, err := p.TryFetch(ctx, prefs)
		if err != nil {
			slog.Warn("data source failed, falling through", "tier", p.Tier(), "error", err)
			lastErr = err
			continue
		}
		if len(batch) == 0 {
			slog.Warn("data source returned no recommendations, falling through", "tier", p.Tier())
			continue
		}
		slog.Info("resolved recommendation batch", "tier", p.Tier(), "count", len(batch))
		return p.Tier(), batch, nil
	}
	return "", nil, lastErr
}
