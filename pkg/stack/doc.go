// Package stack defines the key types that make up a call stack.
//
// # Overview
//
// A stack is an ordered slice of keys, innermost frame first:
//
//	[]stack.Frame{{Function: "read"}, {Function: "handle"}, {Function: "main"}}
//
// Three key types are provided:
//
//   - [Frame]: a call site (function, optional file, row and column)
//   - [Label]: an opaque string label such as a bare function name
//   - [Number]: an integer label, mostly useful in tests
//
// All three are comparable value types and can be used directly as map keys,
// which is all [trie.Merge] needs.
//
// # Presentation
//
// Each key type also satisfies [Key], the constraint used by the node-link
// renderer. [Key.Cells] turns a key and its level into table cells and
// [Key.Columns] reports how many cells every row has, so the header row can
// span the full table width.
//
// [trie.Merge]: github.com/matzehuels/parallelstacks/pkg/trie#Merge
package stack
