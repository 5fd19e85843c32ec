package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/parallelstacks/pkg/cache"
	"github.com/matzehuels/parallelstacks/pkg/errors"
	pkgio "github.com/matzehuels/parallelstacks/pkg/io"
	"github.com/matzehuels/parallelstacks/pkg/observability"
)

// memCache is an in-memory cache.Cache that counts calls.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
	fail bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.fail {
		return nil, false, stderrors.New("backend down")
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.fail {
		return stderrors.New("backend down")
	}
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

const branchInput = "F,E,D,C,B,A; F,E,G,C,B,A"

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.From != pkgio.FormatLabels || o.Noun != "Thread" || o.FontSize != 40 || o.Scale != DefaultScale {
		t.Errorf("defaults = %+v", o)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", o.Formats)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidOption},
		{"input format", Options{From: "yaml"}, errors.ErrCodeInvalidFormat},
		{"depth", Options{DepthLimit: -1}, errors.ErrCodeInvalidOption},
		{"font", Options{FontSize: 1000}, errors.ErrCodeInvalidOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteDOTAndJSON(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:   branchInput,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID not set")
	}
	if res.Stats.Stacks != 2 || res.Stats.Blocks != 3 || res.Stats.Edges != 2 || res.Stats.Depth != 6 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	dot := string(res.Artifacts[FormatDOT])
	if dot != res.DOT || !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT artifact = %q", dot)
	}
	for _, want := range []string{"2 Threads", "table_0 -> table_1", "table_0 -> table_2"} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}

	var layout struct {
		Blocks []struct{ ID int } `json:"blocks"`
		Edges  []struct{ From, To int }
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &layout); err != nil {
		t.Fatalf("layout JSON: %v", err)
	}
	if len(layout.Blocks) != 3 || len(layout.Edges) != 2 {
		t.Errorf("layout = %+v", layout)
	}
}

func TestExecuteFrames(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:   "read:io.go:12, main:main.go:3; write:io.go:30, main:main.go:3",
		From:    pkgio.FormatFrames,
		Noun:    "Goroutine",
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.DOT, "2 Goroutines") || !strings.Contains(res.DOT, "main.go:3:0") {
		t.Errorf("DOT = %s", res.DOT)
	}
}

func TestExecuteInputError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Input:   "a:f.go:x",
		From:    pkgio.FormatFrames,
		Formats: []string{FormatDOT},
	})
	if res != nil {
		t.Errorf("result returned on input error: %+v", res)
	}
	if !errors.IsInputError(err) || !errors.Is(err, errors.ErrCodeInvalidFrame) {
		t.Errorf("error = %v", err)
	}
}

func TestExecuteLayoutCache(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Input: branchInput, Formats: []string{FormatDOT}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run hit the cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run missed the cache")
	}
	if second.DOT != first.DOT || second.Stats.Blocks != first.Stats.Blocks {
		t.Error("cached result differs")
	}
	if first.RunID == second.RunID {
		t.Error("RunID reused")
	}

	opts.Refresh = true
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("refresh read from cache")
	}

	opts.Refresh = false
	opts.Noun = "Goroutine"
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit {
		t.Error("different noun shared a cache entry")
	}
}

func TestExecuteCacheFailureIgnored(t *testing.T) {
	c := newMemCache()
	c.fail = true
	r := NewRunner(c, nil, nil)

	res, err := r.Execute(context.Background(), Options{Input: branchInput, Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("cache failure surfaced: %v", err)
	}
	if res.DOT == "" {
		t.Error("no DOT")
	}
	if c.gets == 0 || c.sets == 0 {
		t.Errorf("cache not consulted: gets=%d sets=%d", c.gets, c.sets)
	}
}

func TestExecuteSVG(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), nil)
	opts := Options{Input: branchInput, Formats: []string{FormatSVG}}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("SVG artifact missing <svg")
	}
	if res.CacheInfo.RenderHit {
		t.Error("first render hit the cache")
	}

	res, err = r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.RenderHit {
		t.Error("second render missed the cache")
	}
	for k := range c.data {
		if !strings.HasPrefix(k, "test:") {
			t.Errorf("unscoped key %q", k)
		}
	}
}

func TestRenderRejectsNonImage(t *testing.T) {
	_, err := Render(context.Background(), "digraph G {}", FormatJSON, 1)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseComplete(_ context.Context, format string, stacks int, _ time.Duration, _ error) {
	h.record("parse")
}

func (h *recordingHooks) OnMergeComplete(context.Context, int, int, time.Duration) {
	h.record("merge")
}

func (h *recordingHooks) OnLayoutComplete(context.Context, int, int, time.Duration) {
	h.record("layout")
}

func TestExecuteEmitsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Input: "a,b", Formats: []string{FormatDOT}}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(h.events, ","); got != "parse,merge,layout" {
		t.Errorf("events = %s", got)
	}
}
