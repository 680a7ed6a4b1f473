package tables

import "fmt"

// RangeError reports a lookup outside the span of the reference data.
// The resolver never extrapolates; every lookup beyond the tables fails with
// a RangeError naming the offending quantity.
type RangeError struct {
	Quantity string
	Value    float64
	Min      float64
	Max      float64
}

func (e *RangeError) Error() string {
	if e.Min == 0 && e.Max == 0 {
		return fmt.Sprintf("%s is outside the tabulated region", e.Quantity)
	}
	return fmt.Sprintf("%s %g outside tabulated range [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

// ParseError locates a malformed line in a table file.
type ParseError struct {
	Table string
	Line  int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s table line %d: %s", e.Table, e.Line, e.Msg)
}
