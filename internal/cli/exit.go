package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/parallelstacks/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = 1
	ExitInput       = 2
	ExitRender      = 3
	ExitInterrupted = 130
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsInputError(err):
		return ExitInput
	case errors.Is(err, errors.ErrCodeRenderFailed):
		return ExitRender
	default:
		return ExitUsage
	}
}

// ErrorMessage returns the text printed for a failed command.
func ErrorMessage(err error) string {
	return errors.UserMessage(err)
}
