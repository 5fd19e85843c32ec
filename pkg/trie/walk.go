package trie

// Walk visits root and its descendants in depth-first pre-order, children in
// insertion order. Returning false from fn skips the children of that node.
//
// Walk uses an explicit stack, so deep trees from recursive call chains do
// not grow the goroutine stack.
func Walk[K comparable](root *Node[K], fn func(n *Node[K]) bool) {
	if root == nil {
		return
	}
	pending := []*Node[K]{root}
	for len(pending) > 0 {
		n := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if !fn(n) {
			continue
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			pending = append(pending, n.children[i])
		}
	}
}

// Stats summarises the shape of a merged tree.
type Stats struct {
	Stacks   int // Non-empty stacks merged (root count)
	Nodes    int // Nodes below the root
	Leaves   int // Nodes without children, root excluded
	Branches int // Nodes with two or more children, root included
	Depth    int // Highest level in the tree
}

// Collect computes [Stats] for the tree rooted at root.
func Collect[K comparable](root *Node[K]) Stats {
	if root == nil {
		return Stats{}
	}
	s := Stats{Stacks: root.Count}
	Walk(root, func(n *Node[K]) bool {
		if n.NumChildren() > 1 {
			s.Branches++
		}
		if n == root {
			return true
		}
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		}
		s.Depth = max(s.Depth, n.Level-root.Level)
		return true
	})
	return s
}

// Equal reports whether a and b have the same keys, counts and levels at
// every position. Sibling order is ignored.
func Equal[K comparable](a, b *Node[K]) bool {
	if a == nil || b == nil {
		return a == b
	}
	type pair struct{ a, b *Node[K] }
	pending := []pair{{a, b}}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if p.a.Key != p.b.Key || p.a.Count != p.b.Count || p.a.Level != p.b.Level {
			return false
		}
		if len(p.a.children) != len(p.b.children) {
			return false
		}
		for _, ca := range p.a.children {
			cb, ok := p.b.Child(ca.Key)
			if !ok {
				return false
			}
			pending = append(pending, pair{ca, cb})
		}
	}
	return true
}
