package maze

import "fmt"

// MalformedGridError is returned when a grid source cannot be parsed,
// either because its rows have inconsistent column counts or because
// it contains invalid cell codes
type MalformedGridError struct {
	Line   int // 1-based source line, 0 if not tied to a line
	Column int // 1-based column, 0 if not tied to a column
	Reason string
}

func (e *MalformedGridError) Error() string {
	switch {
	case e.Line == 0:
		return fmt.Sprintf("malformed grid: %v", e.Reason)
	case e.Column == 0:
		return fmt.Sprintf("malformed grid: line %d: %v", e.Line, e.Reason)
	default:
		return fmt.Sprintf("malformed grid: line %d, column %d: %v", e.Line,
			e.Column, e.Reason)
	}
}
