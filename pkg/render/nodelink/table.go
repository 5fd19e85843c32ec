package nodelink

import (
	"fmt"
	"io"
	"strings"
)

// htmlEscaper replaces the characters reserved in Graphviz HTML-like labels.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes s for use inside an HTML-like label.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// tableCell is one <td>; colspan > 1 makes it span several columns.
type tableCell struct {
	content string
	colspan int
}

type tableRow struct {
	cells []tableCell
}

// htmlTable is the minimal subset of Graphviz HTML-like tables needed to
// draw a block.
type htmlTable struct {
	rows     []tableRow
	fontSize int
}

func (t *htmlTable) addRow(cells ...string) {
	row := tableRow{cells: make([]tableCell, len(cells))}
	for i, c := range cells {
		row.cells[i] = tableCell{content: c, colspan: 1}
	}
	t.rows = append(t.rows, row)
}

func (t *htmlTable) addSpanningRow(content string, colspan int) {
	t.rows = append(t.rows, tableRow{cells: []tableCell{{content: content, colspan: colspan}}})
}

func (t *htmlTable) render(w io.Writer) {
	fmt.Fprintln(w, `    <table BORDER="1" CELLBORDER="1" CELLPADDING="10" CELLSPACING="0" STYLE="ROUNDED">`)
	for i, row := range t.rows {
		t.renderRow(w, row, i)
	}
	fmt.Fprintln(w, "    </table>")
}

// renderRow draws the left side of every cell except in the first column and
// the top side of every cell except in the first row, so adjacent cells share
// a single line inside the rounded outer border.
func (t *htmlTable) renderRow(w io.Writer, row tableRow, rowIndex int) {
	fmt.Fprintln(w, "      <tr>")
	column := 0
	for _, c := range row.cells {
		var sides string
		if column > 0 {
			sides += "L"
		}
		if rowIndex > 0 {
			sides += "T"
		}
		t.renderCell(w, c, sides)
		column += max(c.colspan, 1)
	}
	fmt.Fprintln(w, "      </tr>")
}

func (t *htmlTable) renderCell(w io.Writer, c tableCell, sides string) {
	var b strings.Builder
	b.WriteString("        <td")
	if c.colspan > 1 {
		fmt.Fprintf(&b, ` COLSPAN="%d"`, c.colspan)
	}
	if sides == "" {
		b.WriteString(` BORDER="0"`)
	} else {
		fmt.Fprintf(&b, ` SIDES="%s"`, sides)
	}
	fmt.Fprintf(&b, `><FONT POINT-SIZE="%d">%s</FONT></td>`, t.fontSize, escapeHTML(c.content))
	fmt.Fprintln(w, b.String())
}
