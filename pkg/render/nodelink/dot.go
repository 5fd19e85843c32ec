package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/render"
	"github.com/matzehuels/parallelstacks/pkg/stack"
	"github.com/matzehuels/parallelstacks/pkg/trie"
)

// Default rendering options.
const (
	DefaultNoun     = "Thread"
	DefaultFontSize = 40
)

// Options configures DOT generation.
type Options struct {
	// Noun is the word used in block headers ("3 Threads"). Defaults to "Thread".
	Noun string

	// FontSize is the point size of every table cell. Defaults to 40.
	FontSize int
}

func (o Options) withDefaults() Options {
	if o.Noun == "" {
		o.Noun = DefaultNoun
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// ToDOT converts a layout to Graphviz DOT format.
//
// Each block becomes a plaintext node named table_<id> whose label is an
// HTML-like table: a header row with the stack count spanning all columns,
// then one row per member from the deepest member up to the one next to the
// branch point. Graphs are laid out bottom to top, so callers sit below their
// callees. The result can be rendered with [RenderSVG], [RenderPDF] or [RenderPNG].
func ToDOT[K stack.Key](l Layout[K], opts Options) string {
	opts = opts.withDefaults()

	var zero K
	columns := zero.Columns()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=plaintext];\n")

	for _, b := range l.Blocks {
		t := htmlTable{fontSize: opts.FontSize}
		if len(b.Members) > 0 {
			t.addSpanningRow(b.Header(opts.Noun), columns)
		}
		for _, row := range Rows(b) {
			t.addRow(row...)
		}

		fmt.Fprintf(&buf, "  table_%d [label=<\n", b.ID)
		t.render(&buf)
		buf.WriteString("  >];\n\n")
	}

	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  table_%d -> table_%d [arrowsize=2 minlen=2];\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Rows returns the display cells of a block, one row per member, from the
// deepest member up to the one next to the branch point. Levels are shown
// zero-based.
func Rows[K stack.Key](b Block[K]) [][]string {
	rows := make([][]string, 0, len(b.Members))
	for i := len(b.Members) - 1; i >= 0; i-- {
		m := b.Members[i]
		rows = append(rows, m.Key.Cells(m.Level-1))
	}
	return rows
}

// FromTrie linearizes the tree below root and converts it to DOT.
func FromTrie[K stack.Key](root *trie.Node[K], opts Options) string {
	return ToDOT(Linearize(root), opts)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
//
// The Graphviz context and parsed graph are released before RenderSVG
// returns, on success and on failure. All failures carry
// [errors.ErrCodeRenderFailed]; the DOT text itself stays usable.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render")
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "graphviz produced no output")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag so the drawing starts at the
// origin and carries explicit width and height in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
