package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"offer-proxy/internal/cache"
	"offer-proxy/internal/config"
	"offer-proxy/internal/offers"
)

// Store is a Postgres-backed offer cache, a drop-in replacement for the
// in-memory TTL cache when multiple instances should share entries. Offer
// lists are stored as JSON with an absolute expiry; reads treat expired rows
// as misses and a background sweeper deletes them.
//
// Backing table:
//
//	CREATE TABLE offer_cache (
//	    cache_key  text PRIMARY KEY,
//	    offers     jsonb NOT NULL,
//	    expires_at timestamptz NOT NULL
//	);
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func New(ctx context.Context, cfg config.Config, ttl time.Duration) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Postgres.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Postgres.MaxIdleConns)
	poolCfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &Store{pool: pool, ttl: ttl}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Lookup returns the cached list for key when a row exists and has not
// expired. Expired rows count as misses; the sweeper removes them later.
func (s *Store) Lookup(ctx context.Context, key cache.Key) ([]offers.Offer, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var (
		payload   []byte
		expiresAt time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT offers, expires_at FROM offer_cache WHERE cache_key = $1
	`, key.String()).Scan(&payload, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache row: %w", err)
	}
	if !time.Now().Before(expiresAt) {
		return nil, false, nil
	}

	var list []offers.Offer
	if err := json.Unmarshal(payload, &list); err != nil {
		return nil, false, fmt.Errorf("decode cached offers: %w", err)
	}
	return list, true, nil
}

// Store upserts the list for key with a fresh expiry, replacing any prior
// row wholesale.
func (s *Store) Store(ctx context.Context, key cache.Key, list []offers.Offer) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode offers: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = s.pool.Exec(ctx, `
		INSERT INTO offer_cache (cache_key, offers, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key)
		DO UPDATE SET offers = EXCLUDED.offers, expires_at = EXCLUDED.expires_at
	`, key.String(), payload, time.Now().Add(s.ttl))
	if err != nil {
		return fmt.Errorf("upsert cache row: %w", err)
	}
	return nil
}
