package io

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/parallelstacks/pkg/errors"
	"github.com/matzehuels/parallelstacks/pkg/stack"
)

// gdbFrame matches one backtrace line, for example
//
//	#3  0x00005555555551a9 in worker (arg=0x0) at pool.c:42
//	#7  0x00007ffff7c94ac3 in start_thread (arg=<optimized out>) from /lib/libc.so.6
var gdbFrame = regexp.MustCompile(`^#(\d+) +(?:(0x[0-9a-fA-F]+) in )?(.+?) \((.*)\)(?: (at|from) (.+))?$`)

// gdbSpecial matches frames gdb prints without an argument list,
// such as "#1  <signal handler called>".
var gdbSpecial = regexp.MustCompile(`^#(\d+) +(<.+>)$`)

// ReadGDB reads the output of "thread apply all bt". Each "Thread" header
// starts a stack and a blank line ends it. Lines outside a thread and
// non-frame lines inside one ("Backtrace stopped: ...") are ignored.
func ReadGDB(r io.Reader) ([][]stack.Frame, error) {
	var (
		out     [][]stack.Frame
		current []stack.Frame
		inside  bool
		lineNo  int
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, current)
		}
		current = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasPrefix(line, "Thread "):
			flush()
			inside = true
		case line == "":
			flush()
			inside = false
		case inside && strings.HasPrefix(line, "#"):
			f, err := parseGDBFrame(line)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", lineNo)
			}
			current = append(current, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read gdb backtrace")
	}
	flush()
	return out, nil
}

func parseGDBFrame(line string) (stack.Frame, error) {
	if m := gdbSpecial.FindStringSubmatch(line); m != nil {
		return stack.Frame{Function: m[2]}, nil
	}
	m := gdbFrame.FindStringSubmatch(line)
	if m == nil {
		return stack.Frame{}, errors.New(errors.ErrCodeInvalidInput, "unrecognized backtrace line: %q", line)
	}
	f := stack.Frame{Function: strings.TrimSpace(m[3])}
	switch m[5] {
	case "at":
		f.File, f.Row = splitLine(m[6])
	case "from":
		f.File = m[6]
	}
	return f, nil
}

// splitLine splits "path:line" at the last colon. Paths without a numeric
// suffix are returned whole with a zero row.
func splitLine(loc string) (string, int) {
	i := strings.LastIndexByte(loc, ':')
	if i < 0 {
		return loc, 0
	}
	row, err := strconv.Atoi(loc[i+1:])
	if err != nil {
		return loc, 0
	}
	return loc[:i], row
}
