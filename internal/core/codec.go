package core

import "strings"

// Encode renders e as one ledger line.
//
// The note has every Delimiter replaced with NoteDelimiterSubstitute so it
// cannot shift the field layout; the substitution is not reversed on
// decode. No other escaping is done, so a newline in any field breaks the
// line.
func Encode(e Expense) string {
	note := strings.ReplaceAll(e.Note, Delimiter, NoteDelimiterSubstitute)
	return strings.Join([]string{
		e.StudentName,
		e.Category,
		encodeAmount(e.Amount),
		e.Date,
		note,
	}, Delimiter)
}

// Decode parses a ledger line. It returns false when the line has fewer
// than FieldCount fields. Anything after the fourth delimiter belongs to
// the note, and an unparsable amount becomes zero.
func Decode(line string) (Expense, bool) {
	parts := strings.SplitN(line, Delimiter, FieldCount)
	if len(parts) < FieldCount {
		return Expense{}, false
	}
	return Expense{
		StudentName: parts[0],
		Category:    parts[1],
		Amount:      ParseAmountOrZero(parts[2]),
		Date:        parts[3],
		Note:        parts[4],
	}, true
}
