package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// Delimiter separates encoded fields in the ledger file.
	Delimiter = ","
	// NoteDelimiterSubstitute replaces Delimiter inside notes on encode.
	NoteDelimiterSubstitute = ";"
	// FieldCount is the number of fields in an encoded expense.
	FieldCount = 5
)

type (
	// Expense is one spending entry recorded for a student.
	Expense struct {
		StudentName string
		Category    string
		Amount      decimal.Decimal
		Date        string // free-form, conventionally YYYY-MM-DD
		Note        string
	}

	// StudentExpenses is the result of looking up a single student.
	StudentExpenses struct {
		Name     string
		Expenses []Expense
		Total    decimal.Decimal
	}

	// LoadResult is what a repository read back from persistent storage.
	LoadResult struct {
		Expenses []Expense
		// Skipped counts stored entries that could not be decoded.
		Skipped int
		// Existed is false when there was no ledger to read yet.
		Existed bool
	}

	// StudentTotal is the summed amount for one student.
	StudentTotal struct {
		Name  string
		Total decimal.Decimal
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewExpense builds an Expense from its five fields.
func NewExpense(student, category string, amount decimal.Decimal, date, note string) Expense {
	return Expense{
		StudentName: student,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Note:        note,
	}
}

// Equal reports whether two expenses carry the same fields and amount value.
func (e Expense) Equal(o Expense) bool {
	return e.StudentName == o.StudentName &&
		e.Category == o.Category &&
		e.Amount.Equal(o.Amount) &&
		e.Date == o.Date &&
		e.Note == o.Note
}

// String renders the expense as a single display line.
func (e Expense) String() string {
	return fmt.Sprintf("Student: %s | Category: %s | Amount: %s | Date: %s | Note: %s",
		e.StudentName, e.Category, FormatAmount(e.Amount), e.Date, e.Note)
}

// Found reports whether the lookup matched at least one expense.
func (s StudentExpenses) Found() bool {
	return len(s.Expenses) > 0
}
