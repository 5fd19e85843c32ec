package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
)

// inputFlags are shared by every command that reads stacks.
type inputFlags struct {
	input  string // -i/--input, "-" for stdin
	from   string // --from
	frames bool   // -F/--frames
	depth  int    // --depth
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", `input file ("-" for stdin)`)
	cmd.Flags().StringVar(&f.from, "from", "", "input format: labels (default), frames, json, gdb, goroutine")
	cmd.Flags().BoolVarP(&f.frames, "frames", "F", false, "shorthand for --from frames")
	cmd.Flags().IntVar(&f.depth, "depth", 0, "keep only the outermost N frames of each stack (0 = all)")
}

// format resolves the input format from flags, then config.
func (f *inputFlags) format(c *CLI) (pkgio.Format, error) {
	from := f.from
	if f.frames {
		if from != "" && from != string(pkgio.FormatFrames) {
			return "", errors.New(errors.ErrCodeInvalidOption, "--frames conflicts with --from %s", from)
		}
		from = string(pkgio.FormatFrames)
	}
	if from == "" {
		from = c.Config.Render.From
	}
	return pkgio.ParseFormat(from)
}

// depthLimit resolves --depth against config.
func (f *inputFlags) depthLimit(cmd *cobra.Command, c *CLI) int {
	if cmd.Flags().Changed("depth") {
		return f.depth
	}
	return c.Config.Render.Depth
}

// path returns the input path from -i or the single positional argument.
func (f *inputFlags) path(args []string) (string, error) {
	switch {
	case f.input != "" && len(args) > 0:
		return "", errors.New(errors.ErrCodeInvalidOption, "give the input either as an argument or with --input, not both")
	case f.input != "":
		return f.input, nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New(errors.ErrCodeInvalidOption, "no input: pass a file, or - to read stdin")
	}
}

// read returns the raw input text.
func (f *inputFlags) read(c *CLI, args []string) (string, string, error) {
	path, err := f.path(args)
	if err != nil {
		return "", "", err
	}
	if path == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read input")
		}
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return string(data), path, nil
}
