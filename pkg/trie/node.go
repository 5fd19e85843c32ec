package trie

import (
	"fmt"
	"iter"
	"strings"
)

// Node is one vertex of a merged stack tree.
//
// The zero Node is an empty root. A tree is built once by [Merge] and is
// read-only afterwards.
type Node[K comparable] struct {
	Key   K   // Frame identity; zero for the root
	Count int // Number of input stacks passing through this node
	Level int // Distance from the root; the root is level 0

	children []*Node[K]
	index    map[K]int // built once children outgrow a linear scan
}

// indexThreshold is the number of children above which lookups use a map.
const indexThreshold = 8

// NumChildren returns the number of direct children.
func (n *Node[K]) NumChildren() int {
	return len(n.children)
}

// IsLeaf reports whether n has no children.
func (n *Node[K]) IsLeaf() bool {
	return len(n.children) == 0
}

// ChildAt returns the i-th child in insertion order.
func (n *Node[K]) ChildAt(i int) *Node[K] {
	return n.children[i]
}

// Child returns the child keyed by k.
func (n *Node[K]) Child(k K) (*Node[K], bool) {
	if n.index != nil {
		i, ok := n.index[k]
		if !ok {
			return nil, false
		}
		return n.children[i], true
	}
	for _, c := range n.children {
		if c.Key == k {
			return c, true
		}
	}
	return nil, false
}

// Children iterates over the direct children in insertion order.
func (n *Node[K]) Children() iter.Seq[*Node[K]] {
	return func(yield func(*Node[K]) bool) {
		for _, c := range n.children {
			if !yield(c) {
				return
			}
		}
	}
}

// descend returns the child keyed by k, creating it on first visit.
// Revisiting an existing child increments its count.
func (n *Node[K]) descend(k K) *Node[K] {
	if c, ok := n.Child(k); ok {
		c.Count++
		return c
	}
	c := &Node[K]{Key: k, Count: 1, Level: n.Level + 1}
	n.children = append(n.children, c)
	switch {
	case n.index != nil:
		n.index[k] = len(n.children) - 1
	case len(n.children) > indexThreshold:
		n.index = make(map[K]int, len(n.children))
		for i, c := range n.children {
			n.index[c.Key] = i
		}
	}
	return c
}

// String renders the subtree as indented lines, one node per line.
func (n *Node[K]) String() string {
	var b strings.Builder
	Walk(n, func(c *Node[K]) bool {
		indent := strings.Repeat("  ", c.Level-n.Level)
		if c == n {
			fmt.Fprintf(&b, "%s(root) count=%d\n", indent, c.Count)
		} else {
			fmt.Fprintf(&b, "%s%v count=%d level=%d\n", indent, c.Key, c.Count, c.Level)
		}
		return true
	})
	return b.String()
}
