package stack

import (
	"cmp"
	"fmt"
	"strconv"
)

// Frame identifies one call site.
//
// Two frames are the same node only if all four fields match, so a function
// called from two different lines yields two distinct frames.
type Frame struct {
	Function string `json:"function"`
	File     string `json:"filename,omitempty"`
	Row      int    `json:"row,omitempty"`
	Column   int    `json:"column,omitempty"`
}

// Location returns "file:row:column". An empty file yields ":row:column".
func (f Frame) Location() string {
	return f.File + ":" + strconv.Itoa(f.Row) + ":" + strconv.Itoa(f.Column)
}

// HasLocation reports whether any of file, row or column is set.
func (f Frame) HasLocation() bool {
	return f.File != "" || f.Row != 0 || f.Column != 0
}

// Cells returns the level, the function name and the location.
// The location cell is empty for frames without one.
func (f Frame) Cells(level int) []string {
	loc := ""
	if f.HasLocation() {
		loc = f.Location()
	}
	return []string{strconv.Itoa(level), f.Function, loc}
}

// Columns returns 3.
func (Frame) Columns() int { return 3 }

// Compare orders frames by function, file, row and column.
func (f Frame) Compare(o Frame) int {
	return cmp.Or(
		cmp.Compare(f.Function, o.Function),
		cmp.Compare(f.File, o.File),
		cmp.Compare(f.Row, o.Row),
		cmp.Compare(f.Column, o.Column),
	)
}

// String formats the frame in the same token syntax accepted by the frame parser.
func (f Frame) String() string {
	switch {
	case f.Column != 0:
		return fmt.Sprintf("%s:%s:%d:%d", f.Function, f.File, f.Row, f.Column)
	case f.Row != 0:
		return fmt.Sprintf("%s:%s:%d", f.Function, f.File, f.Row)
	case f.File != "":
		return f.Function + ":" + f.File
	default:
		return f.Function
	}
}
