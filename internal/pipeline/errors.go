package pipeline

import "fmt"

// FormatHint is the static usage hint shown alongside every user-facing
// failure. Binding is positional: the first three columns are used no
// matter what the header calls them.
const FormatHint = `Expected CSV format:
  - Header row, then one row per interview
  - Column 1: interview number (numeric)
  - Column 2: items collected in that interview (numeric)
  - Column 3: new items first seen in that interview (numeric)
Column names do not matter; the first three columns are used by position.
Extra columns are ignored.`

// StructuralError reports input that does not have the minimum expected
// shape (fewer than 3 columns). No row processing happens after it.
type StructuralError struct {
	Columns int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("input must have at least 3 columns, got %d", e.Columns)
}

// ProcessingError reports a failure while coercing, filtering, deriving or
// summarizing rows, including the degenerate case where no valid rows
// survive filtering.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing failed during %s: %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
