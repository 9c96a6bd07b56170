package corrector

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/customdict"
)

// DefaultStoreTimeout bounds each custom dictionary lookup.
const DefaultStoreTimeout = 2 * time.Second

// CustomWords treats words from a user dictionary as correct and defers
// everything else to the wrapped corrector.
type CustomWords struct {
	next    advisor.Corrector
	store   customdict.WordStore
	timeout time.Duration
}

// WithCustomWords wraps next with store. A nil store returns next unchanged.
func WithCustomWords(next advisor.Corrector, store customdict.WordStore) advisor.Corrector {
	if store == nil {
		return next
	}
	return &CustomWords{next: next, store: store, timeout: DefaultStoreTimeout}
}

// SetTimeout changes the per-lookup timeout.
func (c *CustomWords) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

func (c *CustomWords) known(word string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	ok, err := c.store.Contains(ctx, word)
	if err != nil {
		return false, fmt.Errorf("custom dictionary lookup: %w", err)
	}
	return ok, nil
}

func (c *CustomWords) BestCorrection(word string) (string, error) {
	ok, err := c.known(word)
	if err != nil {
		return "", err
	}
	if ok {
		return word, nil
	}
	return c.next.BestCorrection(word)
}

func (c *CustomWords) RankedCandidates(word string) ([]advisor.Candidate, error) {
	ok, err := c.known(word)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}
	return c.next.RankedCandidates(word)
}
