package core

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// ListAll returns records unchanged. ok is false when there is nothing to list.
func ListAll(records []Expense) (all []Expense, ok bool) {
	if len(records) == 0 {
		return nil, false
	}
	return records, true
}

// FilterByStudent returns the expenses whose student name equals name,
// ignoring case, in their original order together with their sum.
func FilterByStudent(records []Expense, name string) StudentExpenses {
	out := StudentExpenses{Name: name, Total: decimal.Zero}
	for _, e := range records {
		if !sameStudent(e.StudentName, name) {
			continue
		}
		out.Expenses = append(out.Expenses, e)
		out.Total = out.Total.Add(e.Amount)
	}
	return out
}

// TotalsByStudent sums amounts per student.
//
// Names are grouped with the same case-insensitive rule FilterByStudent
// uses, so "Alice" and "alice" share one total. Each group is labelled with
// the first spelling seen. Results are ordered by folded name.
func TotalsByStudent(records []Expense) []StudentTotal {
	idx := make(map[string]int)
	var totals []StudentTotal
	for _, e := range records {
		key := studentKey(e.StudentName)
		i, ok := idx[key]
		if !ok {
			idx[key] = len(totals)
			totals = append(totals, StudentTotal{Name: e.StudentName, Total: e.Amount})
			continue
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
	}
	sort.SliceStable(totals, func(a, b int) bool {
		return studentKey(totals[a].Name) < studentKey(totals[b].Name)
	})
	return totals
}

func sameStudent(a, b string) bool {
	return studentKey(a) == studentKey(b)
}

// studentKey is the case-folded form of a student name. Lookups and
// grouping both go through it.
func studentKey(name string) string {
	return cases.Fold().String(name)
}
