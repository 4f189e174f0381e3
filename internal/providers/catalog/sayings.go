package catalog

import (
	"context"
	"fmt"

	"github.com/sandevgo/caliando/internal/core"
)

// Saying returns the entry at the cursor position of the sayings
// collection, wrapping around at the end so "another one" cycles
// forever. total is 0 when the collection is empty.
func (r *Repo) Saying(ctx context.Context, index int) (core.Saying, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dichos_calenos`).Scan(&total); err != nil {
		return core.Saying{}, 0, fmt.Errorf("catalog: count sayings: %w", err)
	}
	if total == 0 {
		return core.Saying{}, 0, nil
	}

	if index < 0 {
		index = 0
	}
	offset := index % total

	var s core.Saying
	err := r.db.QueryRow(ctx,
		`SELECT dicho, COALESCE(significado, '') FROM dichos_calenos ORDER BY dicho OFFSET $1 LIMIT 1`,
		offset,
	).Scan(&s.Phrase, &s.Meaning)
	if err != nil {
		return core.Saying{}, 0, fmt.Errorf("catalog: saying at %d: %w", offset, err)
	}
	return s, total, nil
}
