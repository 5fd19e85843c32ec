package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/matzehuels/parallelstacks/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"canceled", fmt.Errorf("render: %w", context.Canceled), ExitInterrupted},
		{"invalid frame", &errors.FrameError{Token: "f:x:1", Reason: "row not integer"}, ExitInput},
		{"invalid format", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", "xml"), ExitInput},
		{"render failed", errors.New(errors.ErrCodeRenderFailed, "graphviz"), ExitRender},
		{"wrapped render failed", fmt.Errorf("run: %w", errors.New(errors.ErrCodeRenderFailed, "graphviz")), ExitRender},
		{"invalid option", errors.New(errors.ErrCodeInvalidOption, "bad flag"), ExitUsage},
		{"plain error", fmt.Errorf("boom"), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := errors.New(errors.ErrCodeInvalidOption, "no input")
	if got := ErrorMessage(err); got == "" {
		t.Error("ErrorMessage() returned empty string")
	}
}
