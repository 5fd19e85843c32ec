package pipeline

import (
	"context"
	"time"

	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
	"github.com/matzehuels/parallelstacks/pkg/observability"
)

// Parse reads the stacks in opts.Input. A format error aborts the run.
func Parse(ctx context.Context, opts Options) (pkgio.Batch, error) {
	hooks := observability.Pipeline()
	format := string(opts.From)
	hooks.OnParseStart(ctx, format)

	start := time.Now()
	b, err := pkgio.Parse(opts.Input, opts.From)
	hooks.OnParseComplete(ctx, format, b.Len(), time.Since(start), err)
	if err != nil {
		return pkgio.Batch{}, err
	}
	return b, nil
}
