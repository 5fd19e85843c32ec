// Package io reads call stacks from text and writes linearized layouts as JSON.
//
// # Overview
//
// Every reader returns stacks with the innermost frame first, which is the
// order [trie.Merge] expects. Parsing happens before any merge runs: a format
// error aborts the whole batch and no partial result is returned.
//
// # Input Formats
//
// [FormatLabels]: plain labels, "," between frames and ";" between stacks:
//
//	f,e,d,c,b,a; f,e,g,c,b,a
//
// [FormatFrames]: structured frames, function[:file[:row[:column]]]:
//
//	read:io.go:12:3, handle:server.go:40, main:main.go; write:io.go:30, handle:server.go:40, main:main.go
//
// [FormatJSON]: an array of stacks as produced by debug adapters:
//
//	[[{"function": "read", "filename": "io.go", "row": 12, "column": 3}, {"function": "main"}]]
//
// [FormatGDB]: the output of gdb's "thread apply all bt".
//
// [FormatGoroutine]: a Go goroutine dump, as printed on panic, on SIGQUIT or
// by runtime/pprof's goroutine profile with debug=2.
//
// # Errors
//
// A frame token with an empty function name, or a row or column that is not
// an integer, yields an error with code INVALID_FRAME wrapping an
// [errors.FrameError] that carries the offending token. Other malformed input
// yields INVALID_INPUT.
//
// # Layout Export
//
// [WriteLayoutJSON] serializes the blocks and edges of a linearized tree,
// with each row already converted to display cells:
//
//	{
//	  "blocks": [
//	    {"id": 0, "count": 2, "header": "2 Threads", "rows": [["2", "c"], ["1", "b"], ["0", "a"]]}
//	  ],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// [trie.Merge]: github.com/matzehuels/parallelstacks/pkg/trie#Merge
// [errors.FrameError]: github.com/matzehuels/parallelstacks/pkg/errors#FrameError
package io
