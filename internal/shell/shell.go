// Package shell runs the interactive expense tracker session: a numbered
// menu read line by line from an io.Reader, with results written to an
// io.Writer.
package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"ledger/internal/core"
	"ledger/internal/log"
)

// Ledger is the set of operations the menu dispatches to.
type Ledger interface {
	Load(ctx context.Context) (core.LoadResult, error)
	AddExpense(ctx context.Context, e core.Expense)
	ListAll(ctx context.Context) ([]core.Expense, bool)
	ExpensesFor(ctx context.Context, name string) core.StudentExpenses
	Totals(ctx context.Context) ([]core.StudentTotal, bool)
	Save(ctx context.Context) error
}

type choice int

const (
	choiceAdd choice = iota + 1
	choiceViewAll
	choiceViewByStudent
	choiceTotals
	choiceExit
)

// errEndOfInput means the reader ran dry; the session treats it as the exit choice.
var errEndOfInput = errors.New("end of input")

type Shell struct {
	ledger Ledger
	in     *bufio.Reader
	out    io.Writer
	logger *log.Logger
}

func New(ledger Ledger, in io.Reader, out io.Writer, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Discard()
	}
	return &Shell{
		ledger: ledger,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger.WithComponent(log.ComponentShell),
	}
}

// Run loads the ledger, serves the menu until the exit choice (or end of
// input), then saves. The returned error is the save error, if any; load
// errors are reported to the user and the session carries on.
func (s *Shell) Run(ctx context.Context) error {
	s.load(ctx)

	for {
		s.printMenu()
		c, err := s.readChoice()
		if err != nil {
			s.logger.InfoContext(ctx, "input closed, saving and exiting", log.FieldError, err)
			c = choiceExit
		}
		s.logger.DebugContext(ctx, "menu choice", log.FieldChoice, int(c))

		switch c {
		case choiceAdd:
			if err := s.addExpense(ctx); err != nil {
				s.logger.InfoContext(ctx, "input closed during add, saving and exiting")
				return s.exit(ctx)
			}
		case choiceViewAll:
			s.viewAll(ctx)
		case choiceViewByStudent:
			if err := s.viewByStudent(ctx); err != nil {
				return s.exit(ctx)
			}
		case choiceTotals:
			s.showTotals(ctx)
		case choiceExit:
			return s.exit(ctx)
		default:
			s.println("Invalid choice. Try again.")
		}
	}
}

func (s *Shell) load(ctx context.Context) {
	res, err := s.ledger.Load(ctx)
	if err != nil {
		s.printf("Error reading from file: %v\n", err)
		return
	}
	if res.Existed {
		s.printf("Loaded %d expense(s) from file.\n", len(res.Expenses))
	}
}

func (s *Shell) exit(ctx context.Context) error {
	if err := s.ledger.Save(ctx); err != nil {
		s.printf("Error writing to file: %v\n", err)
		s.println("Exiting...")
		return err
	}
	s.println("Data saved to file. Exiting...")
	return nil
}

func (s *Shell) printMenu() {
	s.println()
	s.println("===== STUDENT EXPENSE TRACKER =====")
	s.println("1. Add Expense")
	s.println("2. View All Expenses")
	s.println("3. View Expenses by Student")
	s.println("4. Show Total Expense per Student")
	s.println("5. Save & Exit")
	s.print("Enter your choice: ")
}

// readChoice reads lines until one starts with an integer. Blank lines are
// skipped quietly; anything else non-numeric asks again without redrawing
// the menu. Trailing text after the number is ignored.
func (s *Shell) readChoice() (choice, error) {
	for {
		line, err := s.readLine()
		if err != nil {
			return 0, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			s.print("Please enter a valid number: ")
			continue
		}
		return choice(n), nil
	}
}

func (s *Shell) addExpense(ctx context.Context) error {
	name, err := s.prompt("Enter student name: ")
	if err != nil {
		return err
	}
	category, err := s.prompt("Enter category (Food, Travel, Books, etc.): ")
	if err != nil {
		return err
	}
	amount, err := s.promptAmount("Enter amount: ")
	if err != nil {
		return err
	}
	date, err := s.prompt("Enter date (e.g., 2025-12-04): ")
	if err != nil {
		return err
	}
	note, err := s.prompt("Enter note (optional): ")
	if err != nil {
		return err
	}

	s.ledger.AddExpense(ctx, core.NewExpense(name, category, amount, date, note))
	s.println("Expense added successfully!")
	return nil
}

func (s *Shell) viewAll(ctx context.Context) {
	all, ok := s.ledger.ListAll(ctx)
	if !ok {
		s.println("No expenses found.")
		return
	}
	s.println()
	s.println("--- All Expenses ---")
	for _, e := range all {
		s.println(e.String())
	}
}

func (s *Shell) viewByStudent(ctx context.Context) error {
	name, err := s.prompt("Enter student name to search: ")
	if err != nil {
		return err
	}

	res := s.ledger.ExpensesFor(ctx, name)
	s.println()
	s.printf("--- Expenses for %s ---\n", name)
	for _, e := range res.Expenses {
		s.println(e.String())
	}
	if !res.Found() {
		s.println("No expenses found for this student.")
		return nil
	}
	s.printf("Total Expense for %s = %s\n", name, core.FormatAmount(res.Total))
	return nil
}

func (s *Shell) showTotals(ctx context.Context) {
	totals, ok := s.ledger.Totals(ctx)
	if !ok {
		s.println("No expenses found.")
		return
	}
	s.println()
	s.println("--- Total Expense per Student ---")
	for _, t := range totals {
		s.printf("Student: %s | Total: %s\n", t.Name, core.FormatAmount(t.Total))
	}
}
