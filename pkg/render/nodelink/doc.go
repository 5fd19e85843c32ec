// Package nodelink renders merged stack trees as node-link diagrams.
//
// # Overview
//
// A merged tree (see [trie.Merge]) usually consists of long single-child
// chains joined at a few branch points. Drawing every frame as its own node
// wastes space, so this package collapses each chain into one table and only
// draws arrows where stacks diverge.
//
// # Usage
//
// Linearize a tree, convert it to DOT, then render to SVG:
//
//	layout := nodelink.Linearize(root)
//	dot := nodelink.ToDOT(layout, nodelink.Options{Noun: "Goroutine"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Blocks and edges
//
// [Linearize] returns a [Layout]: blocks in completion order and one [Edge]
// per child of every branch point. Block IDs are allocated as work is pushed,
// so they are stable for a given tree and children order.
//
// # DOT Format
//
// [ToDOT] emits a digraph with rankdir=BT and plaintext nodes whose labels are
// HTML-like tables. The first row of each table is a header such as
// "3 Threads"; the remaining rows are produced by the key type's
// [stack.Key.Cells] method. All cell text is escaped for the five reserved
// markup characters.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [trie.Merge]: github.com/matzehuels/parallelstacks/pkg/trie#Merge
// [stack.Key.Cells]: github.com/matzehuels/parallelstacks/pkg/stack#Key
package nodelink
