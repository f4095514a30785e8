package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestListAllPreservesOrder(t *testing.T) {
	records := []Expense{
		NewExpense("c", "x", amt("1"), "", ""),
		NewExpense("a", "x", amt("2"), "", ""),
		NewExpense("b", "x", amt("3"), "", ""),
	}
	all, ok := ListAll(records)
	require.True(t, ok)
	require.Len(t, all, 3)
	for i := range records {
		require.True(t, records[i].Equal(all[i]))
	}
}

func TestListAllEmpty(t *testing.T) {
	all, ok := ListAll(nil)
	require.False(t, ok)
	require.Empty(t, all)
}

func TestFilterByStudentIgnoresCase(t *testing.T) {
	records := []Expense{
		NewExpense("alice", "Food", amt("5"), "", ""),
		NewExpense("Bob", "Food", amt("1"), "", ""),
		NewExpense("ALICE", "Books", amt("2.25"), "", ""),
	}
	got := FilterByStudent(records, "Alice")
	require.True(t, got.Found())
	require.Len(t, got.Expenses, 2)
	require.Equal(t, "Food", got.Expenses[0].Category)
	require.Equal(t, "Books", got.Expenses[1].Category)
	require.True(t, got.Total.Equal(amt("7.25")))
}

func TestFilterByStudentUsesFullCaseFolding(t *testing.T) {
	records := []Expense{
		NewExpense("Straße", "Food", amt("4"), "", ""),
		NewExpense("STRASSE", "Food", amt("6"), "", ""),
	}
	got := FilterByStudent(records, "strasse")
	require.Len(t, got.Expenses, 2)
	require.True(t, got.Total.Equal(amt("10")))

	totals := TotalsByStudent(records)
	require.Len(t, totals, 1)
	require.Equal(t, "Straße", totals[0].Name)
}

func TestFilterByStudentIsExactMatch(t *testing.T) {
	records := []Expense{NewExpense("Alicia", "Food", amt("5"), "", "")}
	got := FilterByStudent(records, "Alice")
	require.False(t, got.Found())
	require.True(t, got.Total.IsZero())
}

func TestFilterByStudentSumsBob(t *testing.T) {
	records := []Expense{
		NewExpense("Bob", "Food", amt("10"), "", ""),
		NewExpense("Ann", "Food", amt("99"), "", ""),
		NewExpense("Bob", "Travel", amt("15"), "", ""),
	}
	got := FilterByStudent(records, "bob")
	require.Len(t, got.Expenses, 2)
	require.True(t, got.Total.Equal(amt("25")))
}

func TestFilterByStudentMatchesSummingToZero(t *testing.T) {
	records := []Expense{
		NewExpense("Eve", "Refund", amt("-5"), "", ""),
		NewExpense("Eve", "Food", amt("5"), "", ""),
	}
	got := FilterByStudent(records, "eve")
	require.True(t, got.Found())
	require.True(t, got.Total.IsZero())
}

func TestTotalsByStudentGroupsCaseInsensitively(t *testing.T) {
	records := []Expense{
		NewExpense("bob", "Food", amt("0.1"), "", ""),
		NewExpense("Alice", "Food", amt("1"), "", ""),
		NewExpense("alice", "Food", amt("2"), "", ""),
		NewExpense("Bob", "Food", amt("0.2"), "", ""),
	}
	totals := TotalsByStudent(records)
	require.Len(t, totals, 2)
	require.Equal(t, "Alice", totals[0].Name)
	require.True(t, totals[0].Total.Equal(amt("3")))
	require.Equal(t, "bob", totals[1].Name)
	require.True(t, totals[1].Total.Equal(amt("0.3")))
}

func TestTotalsByStudentEmpty(t *testing.T) {
	require.Empty(t, TotalsByStudent(nil))
}
