package io

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

// Format names an input syntax.
type Format string

// Supported input formats.
const (
	FormatLabels    Format = "labels"
	FormatFrames    Format = "frames"
	FormatJSON      Format = "json"
	FormatGDB       Format = "gdb"
	FormatGoroutine Format = "goroutine"
)

// Formats lists every supported input format.
var Formats = []Format{FormatLabels, FormatFrames, FormatJSON, FormatGDB, FormatGoroutine}

// ParseFormat validates a format name. An empty name selects [FormatLabels].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatLabels, nil
	}
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (must be one of %s)", s, formatList())
	}
	return f, nil
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Structured reports whether the format yields [stack.Frame] values.
func (f Format) Structured() bool {
	return f != FormatLabels
}

// Batch is a parsed set of stacks. Labels is set for [FormatLabels];
// Frames is set for every other format.
type Batch struct {
	Format Format
	Labels [][]stack.Label
	Frames [][]stack.Frame
}

// Len returns the number of stacks in the batch.
func (b Batch) Len() int {
	if b.Format.Structured() {
		return len(b.Frames)
	}
	return len(b.Labels)
}

// Read parses all of r using format f.
func Read(r io.Reader, f Format) (Batch, error) {
	switch f {
	case FormatLabels, "":
		data, err := io.ReadAll(r)
		if err != nil {
			return Batch{}, fmt.Errorf("read: %w", err)
		}
		return Batch{Format: FormatLabels, Labels: ParseLabels(string(data))}, nil
	case FormatFrames:
		data, err := io.ReadAll(r)
		if err != nil {
			return Batch{}, fmt.Errorf("read: %w", err)
		}
		frames, err := ParseFrames(string(data))
		return Batch{Format: f, Frames: frames}, err
	case FormatJSON:
		frames, err := ReadJSON(r)
		return Batch{Format: f, Frames: frames}, err
	case FormatGDB:
		frames, err := ReadGDB(r)
		return Batch{Format: f, Frames: frames}, err
	case FormatGoroutine:
		frames, err := ReadGoroutines(r)
		return Batch{Format: f, Frames: frames}, err
	default:
		return Batch{}, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", f)
	}
}

// Parse parses s using format f.
func Parse(s string, f Format) (Batch, error) {
	return Read(strings.NewReader(s), f)
}

// ImportFile reads the file at path using format f.
//
// ImportFile returns an error with code FILE_NOT_FOUND if the file does not
// exist, and the parser's error otherwise.
func ImportFile(path string, f Format) (Batch, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Batch{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, f)
}
