// Package render provides output conversion for stack diagrams.
//
// # Overview
//
// Diagrams are produced as SVG by the [nodelink] subpackage using an
// in-process Graphviz engine. This package converts that SVG to other
// formats with the external rsvg-convert tool (from librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Conversion failures, including a missing rsvg-convert binary, are reported
// with the RENDER_FAILED error code so callers can still fall back to the
// DOT or SVG output.
//
// [nodelink]: github.com/matzehuels/parallelstacks/pkg/render/nodelink
package render
