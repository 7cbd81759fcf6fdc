package storage

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// StartSweeper deletes expired cache rows on a jittered interval until ctx
// is cancelled. Reads already treat expired rows as misses; the sweeper only
// keeps the table from growing.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cache sweeper stopped")
				return
			case <-time.After(jitter(interval)):
				sCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				tag, err := s.pool.Exec(sCtx, `DELETE FROM offer_cache WHERE expires_at <= now()`)
				cancel()
				if err != nil {
					log.Error().Err(err).Msg("sweep expired cache rows")
					continue
				}
				if n := tag.RowsAffected(); n > 0 {
					log.Debug().Int64("rows", n).Msg("swept expired cache rows")
				}
			}
		}
	}()
}

func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	factor := 0.5 + rand.Float64() // 0.5x-1.5x
	return time.Duration(float64(base) * factor)
}
