package stack

import (
	"slices"
	"testing"
)

func TestLabelCells(t *testing.T) {
	got := Label("main").Cells(3)
	want := []string{"3", "main"}
	if !slices.Equal(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
	if n := Label("").Columns(); n != 2 {
		t.Errorf("Columns() = %d, want 2", n)
	}
}

func TestNumberCells(t *testing.T) {
	got := Number(42).Cells(0)
	want := []string{"0", "42"}
	if !slices.Equal(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}

func TestFrameCells(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  []string
	}{
		{
			name:  "full location",
			frame: Frame{Function: "read", File: "io.go", Row: 12, Column: 4},
			want:  []string{"1", "read", "io.go:12:4"},
		},
		{
			name:  "no file",
			frame: Frame{Function: "read", Row: 7},
			want:  []string{"1", "read", ":7:0"},
		},
		{
			name:  "no location",
			frame: Frame{Function: "read"},
			want:  []string{"1", "read", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.frame.Cells(1)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Cells() = %v, want %v", got, tt.want)
			}
			if len(got) != tt.frame.Columns() {
				t.Errorf("len(Cells()) = %d, Columns() = %d", len(got), tt.frame.Columns())
			}
		})
	}
}

func TestFrameHasLocation(t *testing.T) {
	if (Frame{Function: "f"}).HasLocation() {
		t.Error("bare frame should have no location")
	}
	if !(Frame{Function: "f", Row: 1}).HasLocation() {
		t.Error("frame with row should have a location")
	}
}

func TestFrameCompare(t *testing.T) {
	a := Frame{Function: "a", File: "x.go", Row: 1}
	b := Frame{Function: "a", File: "x.go", Row: 2}
	c := Frame{Function: "b"}

	if a.Compare(a) != 0 {
		t.Error("frame should compare equal to itself")
	}
	if a.Compare(b) >= 0 || b.Compare(a) <= 0 {
		t.Error("row should break ties")
	}
	if b.Compare(c) >= 0 {
		t.Error("function should dominate ordering")
	}
}

func TestFrameEqualityIsStructural(t *testing.T) {
	seen := map[Frame]int{}
	seen[Frame{Function: "f", File: "a.go", Row: 1, Column: 2}]++
	seen[Frame{Function: "f", File: "a.go", Row: 1, Column: 2}]++
	seen[Frame{Function: "f", File: "a.go", Row: 1, Column: 3}]++

	if len(seen) != 2 {
		t.Errorf("distinct frames = %d, want 2", len(seen))
	}
}

func TestFrameString(t *testing.T) {
	tests := []struct {
		frame Frame
		want  string
	}{
		{Frame{Function: "f"}, "f"},
		{Frame{Function: "f", File: "a.go"}, "f:a.go"},
		{Frame{Function: "f", File: "a.go", Row: 3}, "f:a.go:3"},
		{Frame{Function: "f", File: "a.go", Row: 3, Column: 9}, "f:a.go:3:9"},
	}
	for _, tt := range tests {
		if got := tt.frame.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
