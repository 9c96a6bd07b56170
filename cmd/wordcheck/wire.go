package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/corrector"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// buildCorrector creates the configured backend and trains it on words.
func buildCorrector(cfg config.AdvisorConfig, words map[string]int) (advisor.Corrector, error) {
	switch cfg.Backend {
	case config.BackendModel:
		m := corrector.NewModel(corrector.ModelOptions{
			Depth:     cfg.MaxEditDistance,
			Threshold: cfg.Threshold,
		})
		m.Train(words)
		return m, nil
	case config.BackendMatcher:
		return corrector.NewMatcher(words, corrector.MatcherOptions{
			MaxEditDistance: cfg.MaxEditDistance,
			MinWordLength:   cfg.MinWordLength,
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// withCustomWords wraps base with store, bounding each lookup by timeout.
func withCustomWords(base advisor.Corrector, store customdict.WordStore, timeout time.Duration) advisor.Corrector {
	c := corrector.WithCustomWords(base, store)
	if cw, ok := c.(*corrector.CustomWords); ok {
		cw.SetTimeout(timeout)
	}
	return c
}

// openStore connects to Redis when enabled. A nil store means custom words are off.
func openStore(ctx context.Context, cfg config.RedisConfig) (*customdict.Redis, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	store := customdict.NewRedis(client, cfg.Key)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis at %s: %w", cfg.Addr, err)
	}
	log.Debugf("Custom dictionary: redis %s key=%s", cfg.Addr, cfg.Key)
	return store, nil
}
