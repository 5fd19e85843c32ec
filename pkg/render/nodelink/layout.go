package nodelink

import (
	"strconv"

	"github.com/matzehuels/parallelstacks/pkg/trie"
)

// Block is a run of tree nodes that form a single-child chain and are drawn
// as one table.
//
// Members are stored in traversal order: Members[0] is the node right below
// a branch point (or a root child), each following member is the only child
// of the previous one.
type Block[K comparable] struct {
	ID      int
	Members []*trie.Node[K]
}

// Count returns the number of stacks passing through the block.
func (b Block[K]) Count() int {
	if len(b.Members) == 0 {
		return 0
	}
	return b.Members[0].Count
}

// Header returns the block caption, e.g. "1 Thread" or "3 Threads".
func (b Block[K]) Header(noun string) string {
	n := b.Count()
	if n != 1 {
		noun += "s"
	}
	return strconv.Itoa(n) + " " + noun
}

// Edge links a block to one of the blocks that continue it past a branch point.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Layout is the linearized form of a merged tree.
// Blocks appear in the order they were completed; Edges in the order they
// were recorded.
type Layout[K comparable] struct {
	Blocks []Block[K]
	Edges  []Edge
}

// Linearize partitions the tree below root into blocks and edges.
//
// Every direct child of root seeds a block; the root itself is never drawn.
// A node with exactly one child continues the current block. A node with two
// or more children closes the current block and opens one block per child,
// each linked by an edge from the closed block. A leaf closes its block.
//
// Block IDs are allocated in the order pending work is pushed. Traversal uses
// two parallel explicit stacks (pending nodes and their block IDs), so tree
// depth never grows the goroutine stack.
func Linearize[K comparable](root *trie.Node[K]) Layout[K] {
	var l Layout[K]
	if root == nil {
		return l
	}

	var (
		pendingNodes []*trie.Node[K]
		pendingIDs   []int
		nextID       int
	)
	push := func(n *trie.Node[K]) int {
		id := nextID
		nextID++
		pendingNodes = append(pendingNodes, n)
		pendingIDs = append(pendingIDs, id)
		return id
	}

	for c := range root.Children() {
		push(c)
	}

	var (
		next    *trie.Node[K]
		current Block[K]
	)
	save := func() {
		l.Blocks = append(l.Blocks, current)
		current = Block[K]{}
	}

	for next != nil || len(pendingNodes) > 0 {
		n := next
		next = nil
		if n == nil {
			last := len(pendingNodes) - 1
			n = pendingNodes[last]
			current.ID = pendingIDs[last]
			pendingNodes = pendingNodes[:last]
			pendingIDs = pendingIDs[:last]
		}

		current.Members = append(current.Members, n)

		switch n.NumChildren() {
		case 0:
			save()
		case 1:
			next = n.ChildAt(0)
		default:
			for c := range n.Children() {
				id := push(c)
				l.Edges = append(l.Edges, Edge{From: current.ID, To: id})
			}
			save()
		}
	}

	return l
}
