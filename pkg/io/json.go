package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

// jsonFrame mirrors the frame objects emitted by debug adapters.
type jsonFrame struct {
	Function string `json:"function"`
	Filename string `json:"filename"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
}

// ReadJSON reads an array of stacks. Each frame is either an object with
// function, filename, row and column fields, or a bare string naming the
// function. Empty stacks are dropped.
func ReadJSON(r io.Reader) ([][]stack.Frame, error) {
	var raw [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON stacks")
	}

	var out [][]stack.Frame
	for i, rawStack := range raw {
		if len(rawStack) == 0 {
			continue
		}
		frames := make([]stack.Frame, len(rawStack))
		for j, msg := range rawStack {
			f, err := decodeFrame(msg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFrame, err, "stack %d, frame %d", i+1, j+1)
			}
			frames[j] = f
		}
		out = append(out, frames)
	}
	return out, nil
}

func decodeFrame(msg json.RawMessage) (stack.Frame, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) > 0 && msg[0] == '"' {
		var name string
		if err := json.Unmarshal(msg, &name); err != nil {
			return stack.Frame{}, err
		}
		if err := errors.ValidateFunctionName(name); err != nil {
			return stack.Frame{}, &errors.FrameError{Token: name, Reason: errors.UserMessage(err)}
		}
		return stack.Frame{Function: name}, nil
	}

	var jf jsonFrame
	if err := json.Unmarshal(msg, &jf); err != nil {
		return stack.Frame{}, &errors.FrameError{Token: string(msg), Reason: jsonReason(err)}
	}
	if err := errors.ValidateFunctionName(jf.Function); err != nil {
		return stack.Frame{}, &errors.FrameError{Token: string(msg), Reason: errors.UserMessage(err)}
	}
	return stack.Frame{Function: jf.Function, File: jf.Filename, Row: jf.Row, Column: jf.Column}, nil
}

func jsonReason(err error) string {
	if te, ok := err.(*json.UnmarshalTypeError); ok {
		return fmt.Sprintf("%s not %s", te.Field, te.Type)
	}
	return err.Error()
}
