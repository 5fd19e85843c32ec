package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
	"github.com/matzehuels/parallelstacks/pkg/observability"
	"github.com/matzehuels/parallelstacks/pkg/render/nodelink"
	"github.com/matzehuels/parallelstacks/pkg/stack"
	"github.com/matzehuels/parallelstacks/pkg/trie"
)

// Tree is a merged batch. Labels is set for label input, Frames otherwise.
type Tree struct {
	Labels *trie.Node[stack.Label]
	Frames *trie.Node[stack.Frame]
}

// Merge folds a parsed batch into a tree.
func Merge(ctx context.Context, b pkgio.Batch, depthLimit int) Tree {
	start := time.Now()
	var t Tree
	if b.Format.Structured() {
		t.Frames = trie.Merge(b.Frames, depthLimit)
	} else {
		t.Labels = trie.Merge(b.Labels, depthLimit)
	}
	st := t.Stats()
	observability.Pipeline().OnMergeComplete(ctx, st.Nodes, st.Depth, time.Since(start))
	return t
}

// Stats returns the tree statistics.
func (t Tree) Stats() trie.Stats {
	if t.Frames != nil {
		return trie.Collect(t.Frames)
	}
	return trie.Collect(t.Labels)
}

// layoutEntry is what the layout stage caches.
type layoutEntry struct {
	DOT    string `json:"dot"`
	Layout []byte `json:"layout"`
	Stats  Stats  `json:"stats"`
}

// layout linearizes the tree and produces its DOT text and JSON export.
func (t Tree) layout(ctx context.Context, opts Options) (layoutEntry, error) {
	if t.Frames != nil {
		return buildLayout(ctx, t.Frames, opts)
	}
	return buildLayout(ctx, t.Labels, opts)
}

func buildLayout[K stack.Key](ctx context.Context, root *trie.Node[K], opts Options) (layoutEntry, error) {
	start := time.Now()
	l := nodelink.Linearize(root)
	observability.Pipeline().OnLayoutComplete(ctx, len(l.Blocks), len(l.Edges), time.Since(start))

	var buf bytes.Buffer
	if err := pkgio.WriteLayoutJSON(&buf, l, opts.Noun); err != nil {
		return layoutEntry{}, fmt.Errorf("export layout: %w", err)
	}

	ts := trie.Collect(root)
	return layoutEntry{
		DOT:    nodelink.ToDOT(l, opts.DOTOptions()),
		Layout: buf.Bytes(),
		Stats: Stats{
			Stacks:   ts.Stacks,
			Nodes:    ts.Nodes,
			Leaves:   ts.Leaves,
			Branches: ts.Branches,
			Depth:    ts.Depth,
			Blocks:   len(l.Blocks),
			Edges:    len(l.Edges),
		},
	}, nil
}
