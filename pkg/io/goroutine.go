package io

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

// goroutineHeader matches "goroutine 7 [chan receive, 3 minutes]:" and the
// newer "goroutine 7 gp=0xc000007c00 m=nil [select]:".
var goroutineHeader = regexp.MustCompile(`^goroutine \d+(?: [^\[]*)? ?\[[^\]]*\]:$`)

// goroutineLocation matches the tab-indented "path/file.go:123 +0x1d" line.
var goroutineLocation = regexp.MustCompile(`^\t(.+):(\d+)(?: \+0x[0-9a-f]+)?$`)

const createdByPrefix = "created by "

// ReadGoroutines reads a goroutine dump. Each "goroutine N [...]:" header
// starts a stack and a blank line ends it. The "created by" line becomes the
// outermost frame. A function line without a location line below it is
// trailing noise ("exit status 2") and is dropped. Function arguments are
// stripped so that the same function called with different arguments merges
// into one node.
func ReadGoroutines(r io.Reader) ([][]stack.Frame, error) {
	var (
		out     [][]stack.Frame
		current []stack.Frame
		pending *stack.Frame
		inside  bool
		lineNo  int
	)
	flush := func() {
		pending = nil
		if len(current) > 0 {
			out = append(out, current)
		}
		current = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), "\r")
		switch {
		case goroutineHeader.MatchString(raw):
			flush()
			inside = true
		case strings.TrimSpace(raw) == "":
			flush()
			inside = false
		case !inside:
		case strings.HasPrefix(raw, "\t"):
			m := goroutineLocation.FindStringSubmatch(raw)
			if m == nil || pending == nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: unexpected location line: %q", lineNo, strings.TrimSpace(raw))
			}
			pending.File, pending.Row = splitLine(m[1] + ":" + m[2])
			current = append(current, *pending)
			pending = nil
		case strings.HasPrefix(raw, "..."):
			// "...additional frames elided..."
		default:
			name := goroutineFunction(raw)
			if name == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: empty function", lineNo)
			}
			pending = &stack.Frame{Function: name}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read goroutine dump")
	}
	flush()
	return out, nil
}

// goroutineFunction extracts the function name from a frame line such as
// "main.(*Server).handle(0xc000010000, {0x4b2c40, 0x3})" or
// "created by net/http.(*Server).Serve in goroutine 1".
func goroutineFunction(line string) string {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, createdByPrefix); ok {
		if i := strings.Index(rest, " in goroutine "); i >= 0 {
			rest = rest[:i]
		}
		return strings.TrimSpace(rest)
	}
	if strings.HasSuffix(line, ")") {
		if i := strings.LastIndexByte(line, '('); i > 0 {
			line = line[:i]
		}
	}
	return strings.TrimSpace(line)
}
