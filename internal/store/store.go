// Package store holds the session's ordered list of expenses and moves it
// to and from a Repository.
//
// A Store belongs to a single interactive session and is not safe for
// concurrent use.
package store

import (
	"context"
	"fmt"

	"ledger/internal/core"
	"ledger/internal/log"
)

type Store struct {
	repo   Repository
	items  []core.Expense
	logger *log.Logger
}

func New(repo Repository, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Discard()
	}
	return &Store{
		repo:   repo,
		logger: logger.WithComponent(log.ComponentStore),
	}
}

// Load appends the persisted expenses to the store in ledger order.
//
// If the repository fails part way, whatever it read is still kept and the
// error is returned for the caller to report.
func (s *Store) Load(ctx context.Context) (core.LoadResult, error) {
	res, err := s.repo.Load(ctx)
	s.items = append(s.items, res.Expenses...)
	if err != nil {
		s.logger.WarnContext(ctx, "partial load",
			log.FieldOperation, log.OpLoad,
			log.FieldCount, len(res.Expenses),
			log.FieldError, err)
		return res, fmt.Errorf("load expenses from %s: %w", s.repo.Location(), err)
	}
	if res.Skipped > 0 {
		s.logger.WarnContext(ctx, "dropped undecodable entries",
			log.FieldOperation, log.OpLoad,
			log.FieldSkipped, res.Skipped)
	}
	s.logger.DebugContext(ctx, "store loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(res.Expenses))
	return res, nil
}

// Save writes every expense to the repository. The in-memory list is left
// as is whether or not the write succeeds.
func (s *Store) Save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.items); err != nil {
		s.logger.ErrorContext(ctx, "save failed",
			log.FieldOperation, log.OpSave,
			log.FieldCount, len(s.items),
			log.FieldError, err)
		return fmt.Errorf("save expenses to %s: %w", s.repo.Location(), err)
	}
	return nil
}

// Add appends e to the end of the list.
func (s *Store) Add(e core.Expense) {
	s.items = append(s.items, e)
	s.logger.Debug("expense added",
		log.FieldOperation, log.OpAppend,
		log.FieldStudent, e.StudentName,
		log.FieldAmount, e.Amount.String())
}

// All returns a copy of the expenses in insertion order.
func (s *Store) All() []core.Expense {
	return append([]core.Expense(nil), s.items...)
}

func (s *Store) Len() int {
	return len(s.items)
}

// Location names where the store persists to.
func (s *Store) Location() string {
	return s.repo.Location()
}
