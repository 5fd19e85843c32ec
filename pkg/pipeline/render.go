package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/observability"
	"github.com/matzehuels/parallelstacks/pkg/render/nodelink"
)

// Render converts DOT text into an image. Non-image formats are rejected.
func Render(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		err = errors.New(errors.ErrCodeUnsupported, "format %q is not an image format", format)
	}

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}
