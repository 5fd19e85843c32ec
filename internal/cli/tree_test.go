package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
	"github.com/matzehuels/parallelstacks/pkg/stack"
	"github.com/matzehuels/parallelstacks/pkg/trie"
)

func TestTreeCommand(t *testing.T) {
	out, err := runCLI(t, twoThreads, "tree", "-")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}

	want := []string{
		"2 threads",
		"└── [2] a",
		"    └── [2] b",
		"        └── [2] c",
		"            ├── [1] d",
		"            │   └── [1] e",
		"            └── [1] g",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("tree output missing %q:\n%s", line, out)
		}
	}
}

func TestTreeDepthLimit(t *testing.T) {
	out, err := runCLI(t, twoThreads, "tree", "--depth", "2", "-")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if strings.Contains(out, "[2] c") {
		t.Errorf("depth limit not applied:\n%s", out)
	}
	if !strings.Contains(out, "[2] b") {
		t.Errorf("expected caller-most frames to survive:\n%s", out)
	}
}

func TestTreeBlocks(t *testing.T) {
	out, err := runCLI(t, twoThreads, "tree", "--blocks", "--noun", "Goroutine", "-")
	if err != nil {
		t.Fatalf("tree --blocks: %v", err)
	}
	for _, want := range []string{"table_0", "2 Goroutines", "1 Goroutine", "edges", "Label"} {
		if !strings.Contains(out, want) {
			t.Errorf("blocks output missing %q:\n%s", want, out)
		}
	}
}

func TestTreeFrames(t *testing.T) {
	out, err := runCLI(t, "run:worker.go:10:2,main:main.go:5:1", "tree", "-F", "-")
	if err != nil {
		t.Fatalf("tree -F: %v", err)
	}
	if !strings.Contains(out, "main") || !strings.Contains(out, "worker.go") {
		t.Errorf("frame output missing function or file:\n%s", out)
	}
}

func TestWriteTreeDeep(t *testing.T) {
	labels := make([]stack.Label, 1000)
	for i := range labels {
		labels[i] = "f"
	}
	root := trie.Merge([][]stack.Label{labels}, 0)

	var buf bytes.Buffer
	writeTree(&buf, root, "Thread")
	if got := strings.Count(buf.String(), "\n"); got != 1001 {
		t.Errorf("lines = %d, want 1001", got)
	}
}

func sampleOutline() *outlineNode {
	root := trie.Merge(pkgio.ParseLabels(twoThreads), 0)
	return buildOutline(root)
}

func TestBuildOutline(t *testing.T) {
	root := sampleOutline()

	if root.count != 2 || len(root.children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	a := root.children[0]
	if a.label != "a" || a.level != 1 || !a.expanded {
		t.Errorf("a = %+v, want expanded level 1 node", a)
	}
	c := a.children[0].children[0]
	if c.label != "c" || c.expanded {
		t.Errorf("branch node c should start collapsed: %+v", c)
	}
	if len(c.children) != 2 || c.children[0].label != "d" || c.children[1].label != "g" {
		t.Errorf("children of c in wrong order")
	}
	if c.children[0].parent != c {
		t.Error("parent link not set")
	}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestBrowseModelNavigation(t *testing.T) {
	var m tea.Model = newBrowseModel(sampleOutline())

	// a, b and c are visible; c is collapsed.
	if got := len(m.(browseModel).rows); got != 3 {
		t.Fatalf("visible rows = %d, want 3", got)
	}

	m = press(m, "j", "j", "enter")
	bm := m.(browseModel)
	if bm.cursor != 2 || bm.selected().label != "c" {
		t.Fatalf("cursor on %q, want c", bm.selected().label)
	}
	// d and g each open a single-child chain ending in e and f.
	if got := len(bm.rows); got != 9 {
		t.Errorf("visible rows after expand = %d, want 9", got)
	}

	m = press(m, "j", "left")
	bm = m.(browseModel)
	if bm.selected().label != "d" {
		t.Errorf("left on expanded d should collapse it, cursor on %q", bm.selected().label)
	}
	if got := len(bm.rows); got != 7 {
		t.Errorf("visible rows after collapse = %d, want 7", got)
	}

	m = press(m, "left")
	bm = m.(browseModel)
	if got := bm.selected().label; got != "c" {
		t.Errorf("left on collapsed node should move to parent, got %q", got)
	}

	m = press(m, "k", "k", "k", "k")
	if got := m.(browseModel).cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}

func TestBrowseModelExpandCollapseAll(t *testing.T) {
	var m tea.Model = newBrowseModel(sampleOutline())

	m = press(m, "e")
	if got := len(m.(browseModel).rows); got != 9 {
		t.Errorf("rows after expand all = %d, want 9", got)
	}

	m = press(m, "c")
	if got := len(m.(browseModel).rows); got != 1 {
		t.Errorf("rows after collapse all = %d, want 1", got)
	}
}

func TestBrowseModelQuit(t *testing.T) {
	m := newBrowseModel(sampleOutline())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseModelView(t *testing.T) {
	m := newBrowseModel(sampleOutline())
	view := m.View()

	for _, want := range []string{"2 stacks", "[2]", "a", "▸ ", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBrowseModelScroll(t *testing.T) {
	labels := make([][]stack.Label, 1)
	for i := 0; i < 50; i++ {
		labels[0] = append(labels[0], stack.Label("f"))
	}
	var m tea.Model = newBrowseModel(buildOutline(trie.Merge(labels, 0)))
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 15})

	for i := 0; i < 30; i++ {
		m = press(m, "j")
	}
	bm := m.(browseModel)
	if bm.cursor != 30 {
		t.Fatalf("cursor = %d, want 30", bm.cursor)
	}
	if bm.cursor < bm.offset || bm.cursor >= bm.offset+bm.height {
		t.Errorf("cursor %d outside window [%d, %d)", bm.cursor, bm.offset, bm.offset+bm.height)
	}
}
