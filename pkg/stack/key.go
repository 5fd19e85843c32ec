package stack

import "strconv"

// Key is the constraint for stack entries that can be rendered as table rows.
//
// Cells must return exactly Columns() cells, the first one being the level.
// Implementations must be pure and must not fail for any value.
type Key interface {
	comparable
	Cells(level int) []string
	Columns() int
}

// Label is an opaque text label, typically a bare function name.
type Label string

// Cells returns the level and the label text.
func (l Label) Cells(level int) []string {
	return []string{strconv.Itoa(level), string(l)}
}

// Columns returns 2.
func (Label) Columns() int { return 2 }

// Number is an integer label.
type Number int

// Cells returns the level and the number.
func (n Number) Cells(level int) []string {
	return []string{strconv.Itoa(level), strconv.Itoa(int(n))}
}

// Columns returns 2.
func (Number) Columns() int { return 2 }
