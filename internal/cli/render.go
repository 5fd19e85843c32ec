package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	inputFlags
	output   string  // output file, or base path for several formats
	formats  string  // comma-separated output formats
	dot      bool    // -d: emit DOT text
	noun     string  // header noun
	fontSize int     // table cell point size
	scale    float64 // PNG resolution multiplier
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Merge stacks and render them as a graph",
		Long: `Merge stacks and render them as a graph of tables.

Each table holds a chain of frames shared by the same set of stacks, headed by
the number of stacks passing through it. Arrows lead from a caller's table to
the tables of the different callees.`,
		Example: `  # Plain labels, innermost frame first, one stack per ";"
  echo "f,e,d,c,b,a; f,e,g,c,b,a" | parallelstacks render - -o threads.svg

  # gdb "thread apply all bt" output as PNG
  parallelstacks render --from gdb bt.txt -o threads.png

  # A Go goroutine dump as DOT text
  parallelstacks render --from goroutine -d dump.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout); base path when several formats are given")
	cmd.Flags().StringVar(&opts.formats, "format", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVarP(&opts.dot, "dot", "d", false, "emit DOT text instead of an image")
	cmd.Flags().StringVar(&opts.noun, "noun", "", `table header noun (default "Thread")`)
	cmd.Flags().IntVar(&opts.fontSize, "font-size", 0, "table cell font size in points (default 40)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG resolution multiplier (default 2)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-render")

	return cmd
}

// pipelineOptions merges flags with config values; flags win.
func (c *CLI) pipelineOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	from, err := opts.format(c)
	if err != nil {
		return pipeline.Options{}, err
	}
	cfg := c.Config.Render

	po := pipeline.Options{
		From:       from,
		DepthLimit: opts.depthLimit(cmd, c),
		Noun:       firstNonEmpty(opts.noun, cfg.Noun),
		FontSize:   cfg.FontSize,
		Scale:      cfg.Scale,
		Formats:    parseFormats(opts.formats, cfg.Format),
		Refresh:    opts.refresh,
	}
	if cmd.Flags().Changed("font-size") {
		po.FontSize = opts.fontSize
	}
	if cmd.Flags().Changed("scale") {
		po.Scale = opts.scale
	}
	if opts.dot {
		if opts.formats != "" && opts.formats != pipeline.FormatDOT {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidOption, "--dot conflicts with --format %s", opts.formats)
		}
		po.Formats = []string{pipeline.FormatDOT}
	}
	return po, nil
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts *renderOpts) error {
	ctx := cmd.Context()

	po, err := c.pipelineOptions(cmd, opts)
	if err != nil {
		return err
	}
	if err := po.ValidateAndSetDefaults(); err != nil {
		return err
	}

	text, name, err := opts.read(c, args)
	if err != nil {
		return err
	}
	po.Input = text

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := c.execute(ctx, runner, po)
	if err != nil {
		if res == nil {
			return err
		}
		// Rendering failed after the tree was built: keep the DOT text.
		printWarning("render failed, writing DOT instead")
		path := ""
		if opts.output != "" {
			path = basePath(opts.output, name) + ".dot"
		}
		if werr := writeOutput(cmd, path, []byte(res.DOT)); werr != nil {
			return werr
		}
		if path != "" {
			printFile(path)
		}
		return err
	}
	prog.done(fmt.Sprintf("Merged %s from %s", plural(res.Stats.Stacks, "stack"), name))
	printStats(res.Stats.Stacks, res.Stats.Nodes, res.Stats.Blocks, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)

	if len(po.Formats) == 1 {
		format := po.Formats[0]
		if err := writeOutput(cmd, opts.output, res.Artifacts[format]); err != nil {
			return err
		}
		if opts.output != "" {
			printFile(opts.output)
		}
		return nil
	}

	base := basePath(opts.output, name)
	for _, format := range po.Formats {
		path := base + "." + format
		if err := writeOutput(cmd, path, res.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// execute runs the pipeline behind a spinner when images are rendered.
func (c *CLI) execute(ctx context.Context, runner *pipeline.Runner, po pipeline.Options) (*pipeline.Result, error) {
	images := false
	for _, f := range po.Formats {
		images = images || pipeline.IsImage(f)
	}
	if !images {
		return runner.Execute(ctx, po)
	}

	spin := newSpinnerWithContext(ctx, "Rendering with Graphviz...")
	spin.Start()
	res, err := runner.Execute(ctx, po)
	spin.Stop()
	return res, err
}

// parseFormats splits the --format flag, falling back to the configured format.
func parseFormats(flag, configured string) []string {
	s := firstNonEmpty(flag, configured)
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input names.
// Known format extensions are stripped; stdin input defaults to the app name.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "stdin" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, or to the command's stdout if path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	out, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
