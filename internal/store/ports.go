package store

import (
	"context"

	"ledger/internal/core"
)

// Repository is where a Store's expenses are persisted between sessions.
type Repository interface {
	// Load returns the persisted expenses in ledger order. On a partial
	// failure it returns what was read together with the error.
	Load(ctx context.Context) (core.LoadResult, error)
	// Save replaces the persisted expenses with the given ones.
	Save(ctx context.Context, expenses []core.Expense) error
	// Location names the persisted target for user-facing messages.
	Location() string
}
