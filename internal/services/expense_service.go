package services

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/store"
)

// ExpenseService is what the shell dispatches to: it applies the ledger
// queries to the session store.
type ExpenseService struct {
	store  *store.Store
	logger *log.Logger
}

func NewExpenseService(s *store.Store, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExpenseService{
		store:  s,
		logger: logger.WithComponent(log.ComponentExpense),
	}
}

// Load fills the store from its repository.
func (s *ExpenseService) Load(ctx context.Context) (core.LoadResult, error) {
	return s.store.Load(ctx)
}

// AddExpense records e at the end of the ledger.
func (s *ExpenseService) AddExpense(ctx context.Context, e core.Expense) {
	s.store.Add(e)
	fields := log.NewFields().
		WithOperation(log.OpAppend).
		WithExpense(e.StudentName, e.Category, e.Amount.String())
	s.logger.InfoContext(ctx, "expense recorded", fields.ToSlice()...)
}

// ListAll returns every expense in order; ok is false when there are none.
func (s *ExpenseService) ListAll(ctx context.Context) ([]core.Expense, bool) {
	all, ok := core.ListAll(s.store.All())
	s.logger.DebugContext(ctx, "listed expenses", log.FieldOperation, log.OpList, log.FieldCount, len(all))
	return all, ok
}

// ExpensesFor looks up one student's expenses, ignoring case.
func (s *ExpenseService) ExpensesFor(ctx context.Context, name string) core.StudentExpenses {
	res := core.FilterByStudent(s.store.All(), name)
	s.logger.DebugContext(ctx, "filtered expenses",
		log.FieldOperation, log.OpFilter,
		log.FieldStudent, name,
		log.FieldCount, len(res.Expenses))
	return res
}

// Totals sums expenses per student. ok is false when the ledger is empty.
func (s *ExpenseService) Totals(ctx context.Context) ([]core.StudentTotal, bool) {
	if s.store.Len() == 0 {
		return nil, false
	}
	totals := core.TotalsByStudent(s.store.All())
	s.logger.DebugContext(ctx, "computed totals", log.FieldOperation, log.OpTotals, log.FieldCount, len(totals))
	return totals, true
}

// Save persists the whole ledger.
func (s *ExpenseService) Save(ctx context.Context) error {
	if err := s.store.Save(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldCount, s.store.Len(),
		log.FieldLocation, s.store.Location())
	return nil
}
