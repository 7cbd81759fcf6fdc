package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"offer-proxy/internal/cache"
	"offer-proxy/internal/device"
	"offer-proxy/internal/observability"
	"offer-proxy/internal/offers"
	"offer-proxy/internal/upstream"
)

// ErrNotConfigured means no feed credential is set; nothing can be fetched.
var ErrNotConfigured = errors.New("offer feed API key is not configured")

// Fetcher is the upstream offer feed.
type Fetcher interface {
	Configured() bool
	Fetch(ctx context.Context, ip, userAgent string) ([]offers.RawOffer, error)
}

// Store holds ranked offer lists keyed by classification. The in-memory TTL
// cache is the default; a shared store may be swapped in without touching
// this package.
type Store interface {
	Lookup(ctx context.Context, key cache.Key) ([]offers.Offer, bool, error)
	Store(ctx context.Context, key cache.Key, list []offers.Offer) error
}

// Request carries the resolved classification inputs for one offer lookup.
type Request struct {
	IP         string
	UserAgent  string
	Country    string
	FormFactor string
	OS         string
}

// Service orchestrates one offer request: classify, check the cache, and on
// a miss fetch, normalize, filter, rank and store.
type Service struct {
	fetcher Fetcher
	store   Store
}

func New(fetcher Fetcher, store Store) *Service {
	return &Service{fetcher: fetcher, store: store}
}

// Offers returns the ranked eligible offers for req. A cache hit returns the
// stored list unchanged. Any upstream failure is terminal for the request
// and writes nothing to the cache; a still-valid prior entry for the key
// stays untouched. Concurrent misses for one key may each fetch upstream;
// the last store wins.
func (s *Service) Offers(ctx context.Context, req Request) ([]offers.Offer, error) {
	if s.fetcher == nil || !s.fetcher.Configured() {
		return nil, ErrNotConfigured
	}

	prof := device.Classify(req.FormFactor, req.OS, req.UserAgent)
	key := cache.NewKey(req.Country, prof)

	cached, ok, err := s.store.Lookup(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key.String()).Msg("cache lookup failed; treating as miss")
	} else if ok {
		observability.CacheHits.Inc()
		log.Debug().Str("key", key.String()).Int("offers", len(cached)).Msg("cache hit")
		return cached, nil
	}
	observability.CacheMisses.Inc()

	raw, err := s.fetcher.Fetch(ctx, req.IP, req.UserAgent)
	if err != nil {
		var apiErr *upstream.APIError
		kind := "transport"
		if errors.As(err, &apiErr) {
			kind = "application"
		}
		observability.UpstreamErrors.WithLabelValues(kind).Inc()
		log.Error().Err(err).Str("key", key.String()).Msg("offer fetch failed")
		return nil, err
	}

	list := make([]offers.Offer, 0, len(raw))
	for _, r := range raw {
		list = append(list, offers.Normalize(r))
	}
	list = offers.Eligible(list, req.Country, prof)
	offers.Rank(list)

	if err := s.store.Store(ctx, key, list); err != nil {
		// fresh list is still served; only caching is lost
		log.Error().Err(err).Str("key", key.String()).Msg("cache store failed")
	}
	log.Debug().Str("key", key.String()).Int("fetched", len(raw)).Int("eligible", len(list)).Msg("cache miss; fetched upstream")
	return list, nil
}
