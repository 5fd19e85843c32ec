package trie

// Merge folds stacks into a single tree and returns its root.
//
// Each stack lists its innermost frame first. Insertion walks the stack from
// its last element to its first, so stack[len-1] becomes a level-1 child of
// the root. A key that appears twice in one stack produces two nodes at two
// depths; merging is positional, never by content.
//
// If depthLimit is positive and shorter than a stack, only depthLimit levels
// are inserted for that stack. Zero or a negative value means no limit.
//
// Empty stacks are skipped and do not count towards the root. Merge never
// fails and does not retain the input slices.
func Merge[K comparable](stacks [][]K, depthLimit int) *Node[K] {
	root := &Node[K]{}
	for _, s := range stacks {
		if len(s) == 0 {
			continue
		}
		root.Count++

		stop := 0
		if depthLimit > 0 && len(s) > depthLimit {
			stop = len(s) - depthLimit
		}

		cur := root
		for i := len(s) - 1; i >= stop; i-- {
			cur = cur.descend(s[i])
		}
	}
	return root
}
