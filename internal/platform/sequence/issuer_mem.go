package sequence

import (
	"context"
	"sync"
)

// MemIssuer is an in-memory Issuer for tests and local development.
type MemIssuer struct {
	mu       sync.Mutex
	counters map[Category]int64
}

func NewMemIssuer() *MemIssuer {
	return &MemIssuer{counters: make(map[Category]int64)}
}

func (i *MemIssuer) Next(_ context.Context, category Category) (string, error) {
	prefix, err := category.Prefix()
	if err != nil {
		return "", err
	}

	i.mu.Lock()
	i.counters[category]++
	value := i.counters[category]
	i.mu.Unlock()

	return Format(prefix, value), nil
}
