package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/parallelstacks/pkg/render/nodelink"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

type layoutJSON struct {
	Blocks []blockJSON     `json:"blocks"`
	Edges  []nodelink.Edge `json:"edges"`
}

type blockJSON struct {
	ID     int        `json:"id"`
	Count  int        `json:"count"`
	Header string     `json:"header"`
	Rows   [][]string `json:"rows"`
}

// WriteLayoutJSON writes the blocks and edges of l as indented JSON.
// Rows hold the same cells the DOT tables show; noun is the header word
// and defaults to [nodelink.DefaultNoun].
func WriteLayoutJSON[K stack.Key](w io.Writer, l nodelink.Layout[K], noun string) error {
	if noun == "" {
		noun = nodelink.DefaultNoun
	}
	out := layoutJSON{
		Blocks: make([]blockJSON, 0, len(l.Blocks)),
		Edges:  l.Edges,
	}
	if out.Edges == nil {
		out.Edges = []nodelink.Edge{}
	}
	for _, b := range l.Blocks {
		out.Blocks = append(out.Blocks, blockJSON{
			ID:     b.ID,
			Count:  b.Count(),
			Header: b.Header(noun),
			Rows:   nodelink.Rows(b),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ExportLayoutFile writes l as JSON to path.
func ExportLayoutFile[K stack.Key](l nodelink.Layout[K], noun, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLayoutJSON(f, l, noun); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteStacksJSON writes frames in the format [ReadJSON] accepts, which
// converts gdb and goroutine dumps into a portable form.
func WriteStacksJSON(w io.Writer, stacks [][]stack.Frame) error {
	out := make([][]jsonFrame, len(stacks))
	for i, s := range stacks {
		out[i] = make([]jsonFrame, len(s))
		for j, f := range s {
			out[i][j] = jsonFrame{Function: f.Function, Filename: f.File, Row: f.Row, Column: f.Column}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
