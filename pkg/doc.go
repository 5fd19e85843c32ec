// Package pkg provides the libraries behind parallelstacks.
//
// # Overview
//
// parallelstacks merges many call stacks (one per thread or goroutine) into
// a single tree that shares common callers, and draws that tree as a graph of
// tables. Reading the picture answers "how many threads are blocked where"
// without scrolling through hundreds of near-identical backtraces.
//
// # Architecture
//
// The typical data flow:
//
//	stack text (labels, frames, JSON, gdb, goroutine dump)
//	         ↓
//	    [io] package (parse into [][]K, innermost frame first)
//	         ↓
//	    [trie] package (merge into a counted prefix tree)
//	         ↓
//	    [render/nodelink] package (linearize into blocks and edges, emit DOT)
//	         ↓
//	    SVG/PDF/PNG via Graphviz and rsvg-convert
//
// [pipeline] ties the stages together with caching ([cache]) and
// instrumentation ([observability]).
//
// # Quick Start
//
//	stacks := io.ParseLabels("f,e,d,c,b,a; f,e,g,c,b,a")
//	root := trie.Merge(stacks, 0)
//	dot := nodelink.FromTrie(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [io]: github.com/matzehuels/parallelstacks/pkg/io
// [trie]: github.com/matzehuels/parallelstacks/pkg/trie
// [render/nodelink]: github.com/matzehuels/parallelstacks/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/parallelstacks/pkg/pipeline
// [cache]: github.com/matzehuels/parallelstacks/pkg/cache
// [observability]: github.com/matzehuels/parallelstacks/pkg/observability
package pkg
