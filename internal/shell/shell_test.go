package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ledger/internal/services"
	"ledger/internal/storage"
	"ledger/internal/store"
)

const menuHeader = "===== STUDENT EXPENSE TRACKER ====="

type session struct {
	path string
	out  bytes.Buffer
	err  error
}

// runSession drives one shell session over a ledger file with the given
// initial content ("" means no file) and scripted input.
func runSession(t *testing.T, initial *string, input string) *session {
	t.Helper()
	s := &session{path: filepath.Join(t.TempDir(), "expenses.txt")}
	if initial != nil {
		require.NoError(t, os.WriteFile(s.path, []byte(*initial), 0o644))
	}
	runAt(t, s, input)
	return s
}

func runAt(t *testing.T, s *session, input string) {
	t.Helper()
	svc := services.NewExpenseService(store.New(storage.NewFileRepository(s.path, nil), nil), nil)
	s.err = New(svc, strings.NewReader(input), &s.out, nil).Run(context.Background())
}

func (s *session) file(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	return string(data)
}

func ptr(s string) *string { return &s }

func TestShell_AddViewAndSave(t *testing.T) {
	input := strings.Join([]string{
		"1", "  Alice ", "Food", "abc", "", "12.50", "2025-01-01", "lunch, with friends",
		"2",
		"5",
	}, "\n") + "\n"
	s := runSession(t, nil, input)
	require.NoError(t, s.err)

	out := s.out.String()
	require.NotContains(t, out, "Loaded")
	require.Equal(t, 2, strings.Count(out, "Invalid amount. Enter again: "))
	require.Contains(t, out, "Expense added successfully!")
	require.Contains(t, out, "--- All Expenses ---")
	require.Contains(t, out, "Student: Alice | Category: Food | Amount: 12.50 | Date: 2025-01-01 | Note: lunch, with friends")
	require.True(t, strings.HasSuffix(out, "Data saved to file. Exiting...\n"))

	require.Equal(t, "Alice,Food,12.5,2025-01-01,lunch; with friends\n", s.file(t))
}

func TestShell_ReloadReportsCount(t *testing.T) {
	s := runSession(t, ptr("Alice,Food,12.5,2025-01-01,lunch; with friends\nbad\nBob,Food,3,2025-01-02,\n"), "2\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Contains(t, out, "Loaded 2 expense(s) from file.")
	require.Contains(t, out, "Note: lunch; with friends")
	require.Equal(t, "Alice,Food,12.5,2025-01-01,lunch; with friends\nBob,Food,3,2025-01-02,\n", s.file(t))
}

func TestShell_NonNumericChoiceRepromptsInPlace(t *testing.T) {
	s := runSession(t, nil, "abc\n\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Equal(t, 1, strings.Count(out, menuHeader))
	require.Equal(t, 1, strings.Count(out, "Please enter a valid number: "))
	require.Contains(t, out, "Data saved to file. Exiting...")
}

func TestShell_OutOfRangeChoice(t *testing.T) {
	s := runSession(t, nil, "9\n0\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Equal(t, 2, strings.Count(out, "Invalid choice. Try again."))
	require.Equal(t, 3, strings.Count(out, menuHeader))
}

func TestShell_EmptyLedgerViews(t *testing.T) {
	s := runSession(t, nil, "2\n4\n3\nnobody\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Equal(t, 2, strings.Count(out, "No expenses found.\n"))
	require.NotContains(t, out, "--- All Expenses ---")
	require.Contains(t, out, "--- Expenses for nobody ---")
	require.Contains(t, out, "No expenses found for this student.")
	require.Empty(t, s.file(t))
}

func TestShell_ViewByStudentIgnoresCase(t *testing.T) {
	s := runSession(t, ptr("Bob,Food,10,2025-01-01,a\nAnn,Food,7,2025-01-01,b\nBob,Travel,15,2025-01-02,c\n"), "3\nbob\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Contains(t, out, "--- Expenses for bob ---")
	require.Contains(t, out, "Student: Bob | Category: Food | Amount: 10.00")
	require.Contains(t, out, "Student: Bob | Category: Travel | Amount: 15.00")
	require.NotContains(t, out, "Student: Ann")
	require.Contains(t, out, "Total Expense for bob = 25.00")
}

func TestShell_ViewByStudentZeroSum(t *testing.T) {
	s := runSession(t, ptr("Eve,Refund,-5,2025-01-01,\nEve,Food,5,2025-01-02,\n"), "3\nEVE\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.NotContains(t, out, "No expenses found for this student.")
	require.Contains(t, out, "Total Expense for EVE = 0.00")
}

func TestShell_Totals(t *testing.T) {
	s := runSession(t, ptr("bob,Food,3,d,\nAlice,Food,1,d,\nalice,Food,2.5,d,\n"), "4\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Contains(t, out, "--- Total Expense per Student ---\nStudent: Alice | Total: 3.50\nStudent: bob | Total: 3.00\n")
}

func TestShell_EndOfInputSaves(t *testing.T) {
	t.Run("at the menu", func(t *testing.T) {
		s := runSession(t, nil, "1\nA\nBooks\n4\n2025-01-01\n\n")
		require.NoError(t, s.err)
		require.Contains(t, s.out.String(), "Data saved to file. Exiting...")
		require.Equal(t, "A,Books,4,2025-01-01,\n", s.file(t))
	})

	t.Run("in the middle of an add", func(t *testing.T) {
		s := runSession(t, ptr("Old,x,1,d,n\n"), "1\nA\nBooks\n")
		require.NoError(t, s.err)
		require.Contains(t, s.out.String(), "Data saved to file. Exiting...")
		require.Equal(t, "Old,x,1,d,n\n", s.file(t))
	})

	t.Run("while re-prompting for the amount", func(t *testing.T) {
		s := runSession(t, nil, "1\nA\nBooks\nnope\n")
		require.NoError(t, s.err)
		require.Empty(t, s.file(t))
	})
}

func TestShell_SecondSessionAppends(t *testing.T) {
	s := runSession(t, nil, "1\nAlice\nFood\n1\nd\nn\n5\n")
	require.NoError(t, s.err)

	s.out.Reset()
	runAt(t, s, "1\nBob\nFood\n2\nd\nn\n5\n")
	require.NoError(t, s.err)
	require.Contains(t, s.out.String(), "Loaded 1 expense(s) from file.")
	require.Equal(t, "Alice,Food,1,d,n\nBob,Food,2,d,n\n", s.file(t))
}

func TestShell_IOErrorsAreReported(t *testing.T) {
	// A directory can be opened but not read as a ledger, nor replaced by one.
	dir := t.TempDir()
	s := &session{path: dir}
	runAt(t, s, "1\nA\nB\n1\nd\nn\n2\n5\n")

	out := s.out.String()
	require.Contains(t, out, "Error reading from file:")
	require.Contains(t, out, "Expense added successfully!")
	require.Contains(t, out, "Student: A | Category: B")
	require.Contains(t, out, "Error writing to file:")
	require.True(t, strings.HasSuffix(out, "Exiting...\n"))
	require.Error(t, s.err)
}

func TestShell_LongInputLine(t *testing.T) {
	note := strings.Repeat("x", 200<<10)
	s := runSession(t, nil, "1\nAlice\nFood\n3\n2025-01-01\n"+note+"\n2\n5\n")
	require.NoError(t, s.err)

	out := s.out.String()
	require.Contains(t, out, "Expense added successfully!")
	require.Contains(t, out, "--- All Expenses ---")
	require.Equal(t, "Alice,Food,3,2025-01-01,"+note+"\n", s.file(t))
}

func TestShell_LastLineWithoutNewline(t *testing.T) {
	s := runSession(t, nil, "1\nAlice\nFood\n3\n2025-01-01\nend")
	require.NoError(t, s.err)
	require.Equal(t, "Alice,Food,3,2025-01-01,end\n", s.file(t))
}

func TestShell_OversizedAmountIsRejected(t *testing.T) {
	s := runSession(t, nil, "1\nA\nFood\n1e2000000\n7\nd\n\n1\nB\nFood\n5\nd\n\n5\n")
	require.NoError(t, s.err)
	require.Contains(t, s.out.String(), "Invalid amount. Enter again: ")
	require.Equal(t, "A,Food,7,d,\nB,Food,5,d,\n", s.file(t))

	// The next session loads and keeps every record.
	s.out.Reset()
	runAt(t, s, "5\n")
	require.NoError(t, s.err)
	require.Contains(t, s.out.String(), "Loaded 2 expense(s) from file.")
	require.NotContains(t, s.out.String(), "Error reading from file")
	require.Equal(t, "A,Food,7,d,\nB,Food,5,d,\n", s.file(t))
}
