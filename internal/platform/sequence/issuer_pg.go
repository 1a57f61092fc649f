package sequence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGIssuer allocates identifiers from a per-category counter row. The
// upsert increments and returns the counter in a single statement, so
// concurrent callers each receive a distinct value.
type PGIssuer struct {
	pool *pgxpool.Pool
}

func NewPGIssuer(pool *pgxpool.Pool) *PGIssuer {
	return &PGIssuer{pool: pool}
}

func (i *PGIssuer) Next(ctx context.Context, category Category) (string, error) {
	prefix, err := category.Prefix()
	if err != nil {
		return "", err
	}

	var value int64
	err = i.pool.QueryRow(ctx, `
		INSERT INTO sequence_counter (category, value)
		VALUES ($1, 1)
		ON CONFLICT (category)
		DO UPDATE SET value = sequence_counter.value + 1
		RETURNING value
	`, string(category)).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("next sequence for %s: %w", category, err)
	}

	return Format(prefix, value), nil
}
