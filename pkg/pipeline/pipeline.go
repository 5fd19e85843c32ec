// Package pipeline runs the parse → merge → linearize → render pipeline.
//
// The CLI and tests drive every request through a [Runner] so that option
// defaults, caching and logging behave the same everywhere.
//
// # Stages
//
//  1. Parse: read stacks from text in one of the [pkgio.Format] syntaxes
//  2. Merge: fold the stacks into a counted prefix tree ([trie.Merge])
//  3. Layout: group single-child chains into blocks and emit DOT
//  4. Render: hand the DOT text to Graphviz for SVG, PNG or PDF output
//
// Stages 1-3 are cached together under a hash of the input text; rendered
// images are cached under a hash of the DOT text.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   dump,
//	    From:    pkgio.FormatGoroutine,
//	    Noun:    "Goroutine",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// A render failure still returns the Result with its DOT text populated.
//
// [pkgio.Format]: github.com/matzehuels/parallelstacks/pkg/io#Format
// [trie.Merge]: github.com/matzehuels/parallelstacks/pkg/trie#Merge
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/parallelstacks/pkg/cache"
	"github.com/matzehuels/parallelstacks/pkg/errors"
	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
	"github.com/matzehuels/parallelstacks/pkg/render/nodelink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatSVG
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatJSON}

// ValidateFormat checks that an output format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return errors.New(errors.ErrCodeInvalidOption, "invalid format: %q (must be one of: %s)",
			format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// IsImage reports whether the format requires Graphviz.
func IsImage(format string) bool {
	return format == FormatSVG || format == FormatPNG || format == FormatPDF
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Input is the raw stack text.
	Input string `json:"-"`

	// From selects the input syntax. Defaults to labels.
	From pkgio.Format `json:"from"`

	// DepthLimit keeps only the outermost DepthLimit frames of each stack.
	// Zero means unlimited.
	DepthLimit int `json:"depth_limit,omitempty"`

	// Noun is the header word ("3 Threads"). Defaults to "Thread".
	Noun string `json:"noun,omitempty"`

	// FontSize is the table cell point size. Defaults to 40.
	FontSize int `json:"font_size,omitempty"`

	// Formats lists the outputs to produce. Defaults to svg.
	Formats []string `json:"formats,omitempty"`

	// Scale is the PNG resolution multiplier. Defaults to 2.
	Scale float64 `json:"scale,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// ValidateAndSetDefaults checks options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.From == "" {
		o.From = pkgio.FormatLabels
	}
	if _, err := pkgio.ParseFormat(string(o.From)); err != nil {
		return err
	}
	if err := errors.ValidateDepthLimit(o.DepthLimit); err != nil {
		return err
	}
	if o.Noun == "" {
		o.Noun = nodelink.DefaultNoun
	}
	if err := errors.ValidateNoun(o.Noun); err != nil {
		return err
	}
	if o.FontSize == 0 {
		o.FontSize = nodelink.DefaultFontSize
	}
	if err := errors.ValidateFontSize(o.FontSize); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	o.validated = true
	return nil
}

// DOTOptions returns the table options for DOT generation.
func (o *Options) DOTOptions() nodelink.Options {
	return nodelink.Options{Noun: o.Noun, FontSize: o.FontSize}
}

// LayoutKeyOpts returns cache key options for the parse, merge and layout stages.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Format:     string(o.From),
		DepthLimit: o.DepthLimit,
		Noun:       o.Noun,
		FontSize:   o.FontSize,
	}
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this execution in logs.
	RunID string

	// DOT is the Graphviz description of the merged tree.
	DOT string

	// Layout is the JSON export of blocks and edges.
	Layout []byte

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the merged tree and stage timings.
type Stats struct {
	Stacks   int `json:"stacks"`
	Nodes    int `json:"nodes"`
	Leaves   int `json:"leaves"`
	Branches int `json:"branches"`
	Depth    int `json:"depth"`
	Blocks   int `json:"blocks"`
	Edges    int `json:"edges"`

	LayoutTime time.Duration `json:"-"`
	RenderTime time.Duration `json:"-"`
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool // DOT and layout JSON came from cache
	RenderHit bool // Every image artifact came from cache
}
