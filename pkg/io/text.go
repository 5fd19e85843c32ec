package io

import (
	"strconv"
	"strings"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

const (
	stackSeparator = ";"
	frameSeparator = ","
	fieldSeparator = ":"
)

// splitStacks splits s into stacks of trimmed, non-empty tokens.
// Stacks without tokens are dropped.
func splitStacks(s string) [][]string {
	var out [][]string
	for _, part := range strings.Split(s, stackSeparator) {
		var tokens []string
		for _, tok := range strings.Split(part, frameSeparator) {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if len(tokens) > 0 {
			out = append(out, tokens)
		}
	}
	return out
}

// ParseLabels parses plain labels: "," separates frames and ";" separates
// stacks. Whitespace around labels is trimmed and empty labels are dropped.
func ParseLabels(s string) [][]stack.Label {
	var out [][]stack.Label
	for _, tokens := range splitStacks(s) {
		labels := make([]stack.Label, len(tokens))
		for i, tok := range tokens {
			labels[i] = stack.Label(tok)
		}
		out = append(out, labels)
	}
	return out
}

// ParseFrames parses structured frames of the form
// function[:file[:row[:column]]], with the same separators as [ParseLabels].
// Missing fields default to empty or zero.
func ParseFrames(s string) ([][]stack.Frame, error) {
	var out [][]stack.Frame
	for i, tokens := range splitStacks(s) {
		frames := make([]stack.Frame, len(tokens))
		for j, tok := range tokens {
			f, err := ParseFrame(tok)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFrame, err, "stack %d, frame %d", i+1, j+1)
			}
			frames[j] = f
		}
		out = append(out, frames)
	}
	return out, nil
}

// ParseFrame parses a single function[:file[:row[:column]]] token.
// Errors are of type *errors.FrameError.
func ParseFrame(token string) (stack.Frame, error) {
	token = strings.TrimSpace(token)
	fields := strings.SplitN(token, fieldSeparator, 4)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	f := stack.Frame{Function: fields[0]}
	if f.Function == "" {
		return stack.Frame{}, &errors.FrameError{Token: token, Reason: "empty function"}
	}
	if err := errors.ValidateFunctionName(f.Function); err != nil {
		return stack.Frame{}, &errors.FrameError{Token: token, Reason: errors.UserMessage(err)}
	}
	if len(fields) > 1 {
		f.File = fields[1]
	}
	if len(fields) > 2 && fields[2] != "" {
		row, err := strconv.Atoi(fields[2])
		if err != nil {
			return stack.Frame{}, &errors.FrameError{Token: token, Reason: "row not integer"}
		}
		f.Row = row
	}
	if len(fields) > 3 && fields[3] != "" {
		col, err := strconv.Atoi(fields[3])
		if err != nil {
			return stack.Frame{}, &errors.FrameError{Token: token, Reason: "column not integer"}
		}
		f.Column = col
	}
	return f, nil
}
