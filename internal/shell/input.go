package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"ledger/internal/core"
)

// readLine returns the next input line without its line ending, or
// errEndOfInput once the reader is exhausted. Lines have no length limit.
// A final line with no newline is still returned. A read error also ends
// input.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %v", errEndOfInput, err)
	}
	if line == "" && err != nil {
		return "", errEndOfInput
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// prompt asks for a free-text field and returns it trimmed. Empty answers
// are accepted.
func (s *Shell) prompt(label string) (string, error) {
	s.print(label)
	line, err := s.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptAmount keeps asking until the answer parses as an amount.
func (s *Shell) promptAmount(label string) (decimal.Decimal, error) {
	s.print(label)
	for {
		line, err := s.readLine()
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := core.ParseAmount(line)
		if err == nil {
			return amount, nil
		}
		s.print("Invalid amount. Enter again: ")
	}
}

func (s *Shell) print(a ...any) {
	fmt.Fprint(s.out, a...)
}

func (s *Shell) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Shell) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
