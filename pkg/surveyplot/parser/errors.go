package parser

import (
	"fmt"
	"strings"
)

// SheetNotFoundError indicates the workbook has no sheet with the requested name.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

// MalformedTableError indicates a sheet region that cannot be read as a header plus rows.
type MalformedTableError struct {
	Sheet  string
	Row    int // 1-based worksheet row, 0 when not row specific
	Reason string
}

func (e *MalformedTableError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed table in sheet %q at row %d: %s", e.Sheet, e.Row, e.Reason)
	}
	return fmt.Sprintf("malformed table in sheet %q: %s", e.Sheet, e.Reason)
}

func malformed(sheet string, row int, format string, args ...any) *MalformedTableError {
	return &MalformedTableError{Sheet: sheet, Row: row, Reason: fmt.Sprintf(format, args...)}
}
