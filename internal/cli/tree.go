package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parallelstacks/pkg/pipeline"
	"github.com/matzehuels/parallelstacks/pkg/render/nodelink"
	"github.com/matzehuels/parallelstacks/pkg/stack"
	"github.com/matzehuels/parallelstacks/pkg/trie"
)

type treeOpts struct {
	inputFlags
	blocks bool
	noun   string
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the merged stack tree",
		Long: `Print the merged stack tree with the number of stacks passing through
each frame. With --blocks, print the tables that render would draw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(cmd, args, &opts.inputFlags)
			if err != nil {
				return err
			}
			noun := firstNonEmpty(opts.noun, c.Config.Render.Noun, nodelink.DefaultNoun)
			w := cmd.OutOrStdout()
			switch {
			case opts.blocks && t.Frames != nil:
				writeBlocks(w, t.Frames, noun)
			case opts.blocks:
				writeBlocks(w, t.Labels, noun)
			case t.Frames != nil:
				writeTree(w, t.Frames, noun)
			default:
				writeTree(w, t.Labels, noun)
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.blocks, "blocks", false, "print each block as a table")
	cmd.Flags().StringVar(&opts.noun, "noun", "", `header noun (default "Thread")`)
	return cmd
}

// loadTree reads, parses and merges the input of tree and browse.
func (c *CLI) loadTree(cmd *cobra.Command, args []string, f *inputFlags) (pipeline.Tree, error) {
	from, err := f.format(c)
	if err != nil {
		return pipeline.Tree{}, err
	}
	text, _, err := f.read(c, args)
	if err != nil {
		return pipeline.Tree{}, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := pipeline.Parse(ctx, pipeline.Options{Input: text, From: from})
	if err != nil {
		return pipeline.Tree{}, err
	}
	return pipeline.Merge(ctx, b, f.depthLimit(cmd, c)), nil
}

// treeLine is a pending line of tree output.
type treeLine[K comparable] struct {
	node   *trie.Node[K]
	prefix string
	last   bool
}

// writeTree prints root's descendants with box-drawing guides, one line per
// node. Traversal is iterative so deep trees do not grow the call stack.
func writeTree[K stack.Key](w io.Writer, root *trie.Node[K], noun string) {
	fmt.Fprintln(w, StyleTitle.Render(plural(root.Count, strings.ToLower(noun))))

	pending := pushChildren(nil, root, "")
	for len(pending) > 0 {
		l := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		connector, guide := "├── ", "│   "
		if l.last {
			connector, guide = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s %s\n",
			StyleDim.Render(l.prefix+connector),
			StyleNumber.Render(fmt.Sprintf("[%d]", l.node.Count)),
			StyleValue.Render(fmt.Sprint(l.node.Key)))
		pending = pushChildren(pending, l.node, l.prefix+guide)
	}
}

// pushChildren pushes n's children in reverse so they pop in order.
func pushChildren[K comparable](pending []treeLine[K], n *trie.Node[K], prefix string) []treeLine[K] {
	k := n.NumChildren()
	for i := k - 1; i >= 0; i-- {
		pending = append(pending, treeLine[K]{node: n.ChildAt(i), prefix: prefix, last: i == k-1})
	}
	return pending
}

var blockHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

// writeBlocks prints the linearized blocks as tables, followed by the edges.
func writeBlocks[K stack.Key](w io.Writer, root *trie.Node[K], noun string) {
	l := nodelink.Linearize(root)

	var zero K
	headers := []string{"Level", "Label"}
	if zero.Columns() == 3 {
		headers = []string{"Level", "Function", "Location"}
	}

	for _, b := range l.Blocks {
		fmt.Fprintf(w, "%s %s\n",
			StyleTitle.Render(fmt.Sprintf("table_%d", b.ID)),
			StyleDim.Render(b.Header(noun)))

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers(headers...).
			Rows(nodelink.Rows(b)...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return blockHeaderStyle
				}
				if col == 0 {
					return lipgloss.NewStyle().Foreground(colorDim)
				}
				return lipgloss.NewStyle()
			})
		fmt.Fprintln(w, t.Render())
	}

	if len(l.Edges) == 0 {
		return
	}
	fmt.Fprintln(w, StyleTitle.Render("edges"))
	for _, e := range l.Edges {
		fmt.Fprintf(w, "  table_%d %s table_%d\n", e.From, StyleDim.Render(iconArrow), e.To)
	}
}
