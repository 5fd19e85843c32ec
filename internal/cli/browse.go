package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/parallelstacks/pkg/stack"
	"github.com/matzehuels/parallelstacks/pkg/trie"
)

// browseCommand creates the interactive tree browser.
func (c *CLI) browseCommand() *cobra.Command {
	var opts inputFlags

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore the merged stack tree interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTree(cmd, args, &opts)
			if err != nil {
				return err
			}
			var root *outlineNode
			if t.Frames != nil {
				root = buildOutline(t.Frames)
			} else {
				root = buildOutline(t.Labels)
			}
			p := tea.NewProgram(newBrowseModel(root), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	opts.register(cmd)
	return cmd
}

// outlineNode is a display copy of a trie node.
type outlineNode struct {
	label    string
	count    int
	level    int
	parent   *outlineNode
	children []*outlineNode
	expanded bool
}

// buildOutline copies the tree below root into display nodes. Single-child
// chains start expanded so that a stack reads top to bottom until it branches.
func buildOutline[K stack.Key](root *trie.Node[K]) *outlineNode {
	out := &outlineNode{label: "(all)", count: root.Count, expanded: true}

	type item struct {
		src *trie.Node[K]
		dst *outlineNode
	}
	pending := []item{{root, out}}
	for len(pending) > 0 {
		it := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for child := range it.src.Children() {
			n := &outlineNode{
				label:    fmt.Sprint(child.Key),
				count:    child.Count,
				level:    child.Level,
				parent:   it.dst,
				expanded: child.NumChildren() == 1,
			}
			it.dst.children = append(it.dst.children, n)
			pending = append(pending, item{child, n})
		}
	}
	return out
}

// browseModel is the bubbletea model for the tree browser.
type browseModel struct {
	root    *outlineNode
	rows    []*outlineNode
	cursor  int
	offset  int
	height  int
	maxRows int
}

func newBrowseModel(root *outlineNode) browseModel {
	m := browseModel{root: root, height: 20}
	m.refresh()
	return m
}

// refresh rebuilds the visible rows from the expansion state.
func (m *browseModel) refresh() {
	m.rows = m.rows[:0]
	pending := make([]*outlineNode, 0, len(m.root.children))
	for i := len(m.root.children) - 1; i >= 0; i-- {
		pending = append(pending, m.root.children[i])
	}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		m.rows = append(m.rows, n)
		if n.expanded {
			for i := len(n.children) - 1; i >= 0; i-- {
				pending = append(pending, n.children[i])
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

// scroll keeps the cursor inside the window.
func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) selected() *outlineNode {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.cursor]
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", " ", "right", "l":
			if n := m.selected(); n != nil && len(n.children) > 0 {
				n.expanded = !n.expanded
				m.refresh()
			}
		case "left", "h":
			n := m.selected()
			switch {
			case n == nil:
			case n.expanded && len(n.children) > 0:
				n.expanded = false
				m.refresh()
			case n.parent != nil && n.parent != m.root:
				for i, r := range m.rows {
					if r == n.parent {
						m.cursor = i
						break
					}
				}
			}
		case "e":
			setExpanded(m.root, true)
			m.refresh()
		case "c":
			for _, n := range m.root.children {
				setExpanded(n, false)
			}
			m.refresh()
		}
		m.scroll()
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-5, 5)
		m.scroll()
	}
	return m, nil
}

// setExpanded sets the expansion state of n and all of its descendants.
func setExpanded(n *outlineNode, expanded bool) {
	pending := []*outlineNode{n}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if len(cur.children) > 0 {
			cur.expanded = expanded
		}
		pending = append(pending, cur.children...)
	}
}

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(plural(m.root.count, "stack")))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ toggle  ← parent  e expand all  c collapse  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		n := m.rows[i]
		marker := "  "
		switch {
		case len(n.children) == 0:
		case n.expanded:
			marker = "▾ "
		default:
			marker = "▸ "
		}

		line := fmt.Sprintf("%s%s%s %s",
			strings.Repeat("  ", n.level-1),
			marker,
			StyleNumber.Render(fmt.Sprintf("[%d]", n.count)),
			n.label)
		if i == m.cursor {
			b.WriteString(browseSelectedStyle.Render(line))
		} else {
			b.WriteString(browseNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", min(m.cursor+1, len(m.rows)), len(m.rows))))
	return b.String()
}
