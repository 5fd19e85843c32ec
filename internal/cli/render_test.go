package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/parallelstacks/pkg/errors"
)

const twoThreads = "f,e,d,c,b,a; f,e,g,c,b,a"

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		configured string
		want       []string
	}{
		{"empty", "", "", nil},
		{"single format", "svg", "", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", "", []string{"svg", "pdf", "png"}},
		{"spaces and case", " SVG , dot ", "", []string{"svg", "dot"}},
		{"config fallback", "", "png", []string{"png"}},
		{"flag wins", "dot", "png", []string{"dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.flag, tt.configured)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q, %q) = %v, want %v", tt.flag, tt.configured, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "", appName},
		{"", "stdin", appName},
		{"", "dumps/bt.txt", "dumps/bt"},
		{"out/threads.svg", "bt.txt", "out/threads"},
		{"out/threads.PNG", "bt.txt", "out/threads.PNG"},
		{"out/threads", "bt.txt", "out/threads"},
		{"out/threads.v2", "bt.txt", "out/threads.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := runCLI(t, twoThreads, "render", "--dot", "--no-cache", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"digraph G {", "2 Threads", "1 Thread", "->"} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNounAndFontSize(t *testing.T) {
	out, err := runCLI(t, twoThreads, "render", "--dot", "--no-cache", "--noun", "Goroutine", "--font-size", "12", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "2 Goroutines") {
		t.Errorf("header noun not applied:\n%s", out)
	}
	if !strings.Contains(out, `POINT-SIZE="12"`) {
		t.Errorf("font size not applied:\n%s", out)
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := runCLI(t, twoThreads, "render", "--format", "json", "--no-cache", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc struct {
		Blocks []struct {
			ID    int        `json:"id"`
			Count int        `json:"count"`
			Rows  [][]string `json:"rows"`
		} `json:"blocks"`
		Edges []struct {
			From int `json:"from"`
			To   int `json:"to"`
		} `json:"edges"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(doc.Blocks) != 3 {
		t.Errorf("blocks = %d, want 3", len(doc.Blocks))
	}
	if len(doc.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(doc.Edges))
	}
}

func TestRenderMultipleFormatsToFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "threads")

	if _, err := runCLI(t, twoThreads, "render", "--format", "dot,json", "-o", base+".svg", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{".dot", ".json"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("missing %s output: %v", ext, err)
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
}

func TestRenderInputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacks.txt")
	if err := os.WriteFile(path, []byte(twoThreads), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "render", "-d", "--no-cache", "-i", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantExit int
	}{
		{"bad row", "f:x:notanint", []string{"render", "-F", "-d", "-"}, ExitInput},
		{"empty function", ":x", []string{"render", "-F", "-d", "-"}, ExitInput},
		{"unknown input format", "a", []string{"render", "--from", "xml", "-d", "-"}, ExitInput},
		{"unknown output format", "a", []string{"render", "--format", "bmp", "-"}, ExitUsage},
		{"dot conflicts with format", "a", []string{"render", "-d", "--format", "png", "-"}, ExitUsage},
		{"frames conflicts with from", "a", []string{"render", "-F", "--from", "gdb", "-d", "-"}, ExitUsage},
		{"no input", "", []string{"render", "-d"}, ExitUsage},
		{"input twice", "", []string{"render", "-d", "-i", "a.txt", "b.txt"}, ExitUsage},
		{"missing file", "", []string{"render", "-d", filepath.Join(os.TempDir(), "parallelstacks-missing.txt")}, ExitUsage},
		{"bad depth", "a", []string{"render", "-d", "--depth", "-1", "-"}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := ExitCode(err); got != tt.wantExit {
				t.Errorf("ExitCode(%v) = %d, want %d", err, got, tt.wantExit)
			}
		})
	}
}

func TestRenderMissingFileCode(t *testing.T) {
	_, err := runCLI(t, "", "render", "-d", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
