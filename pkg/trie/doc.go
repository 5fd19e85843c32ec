// Package trie merges call stacks into a single counted tree.
//
// # Overview
//
// [Merge] folds a batch of stacks into one tree rooted at an empty node. Each
// stack is given innermost frame first, as debuggers print them, and is
// inserted starting from its last (outermost) element, so root-to-leaf paths
// read from caller to callee:
//
//	stacks := [][]stack.Label{
//	    {"read", "handle", "main"},
//	    {"write", "handle", "main"},
//	}
//	root := trie.Merge(stacks, 0)
//	// root (2) -> main (2) -> handle (2) -> read (1)
//	//                                    -> write (1)
//
// Every node records how many input stacks pass through it ([Node.Count]) and
// its distance from the root ([Node.Level]). Empty stacks are ignored.
//
// # Ordering
//
// Children are kept in insertion order: the first stack that reaches a key at
// a given position decides where that key sorts among its siblings. Counts and
// levels never depend on the order of the input batch; use [Equal] to compare
// trees independent of sibling order.
//
// # Depth limit
//
// A positive depth limit stops descending after that many levels, keeping the
// caller-most frames of long stacks and bounding the tree depth.
package trie
