package carousel

import (
	"reflect"
	"testing"
)

func TestSlots(t *testing.T) {
	if got, want := Slots(3), []int{2, 0, 1, 2, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots(3) = %v, want %v", got, want)
	}
	if got, want := Slots(1), []int{0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots(1) = %v, want %v", got, want)
	}
	if got := Slots(0); got != nil {
		t.Fatalf("Slots(0) = %v, want nil", got)
	}
}

func TestOffsetPercent(t *testing.T) {
	tests := []struct {
		position, n int
		want        float64
	}{
		{1, 3, -20},
		{0, 3, 0},
		{4, 3, -80},
		{1, 0, -50},
	}
	for _, tt := range tests {
		if got := OffsetPercent(tt.position, tt.n); got != tt.want {
			t.Fatalf("OffsetPercent(%d, %d) = %v, want %v", tt.position, tt.n, got, tt.want)
		}
	}
}

func TestGroup(t *testing.T) {
	got := Group([]int{1, 2, 3, 4, 5}, 2)
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Group = %v, want %v", got, want)
	}

	got[0] = append(got[0], 99)
	if got[1][0] != 3 {
		t.Fatalf("appending to a group clobbered its neighbour: %v", got)
	}

	if Group([]int{}, 3) != nil {
		t.Fatal("Group of empty slice should be nil")
	}
	if Group([]int{1}, 0) != nil {
		t.Fatal("Group with size 0 should be nil")
	}
}

func TestFrameHorizontal(t *testing.T) {
	panels := []string{"A", "B", "C"}
	tests := []struct {
		name     string
		from, to int
		progress float64
		want     string
	}{
		{"at rest on first", 1, 1, 1, "A  "},
		{"half way to second", 1, 2, 0.5, " B "},
		{"trailing clone shows first", 3, 4, 1, "A  "},
		{"leading clone shows last", 1, 0, 1, "C  "},
		{"not started", 2, 3, 0, "B  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Frame(panels, 3, 1, Horizontal, tt.from, tt.to, tt.progress)
			if got != tt.want {
				t.Fatalf("Frame = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrameVertical(t *testing.T) {
	panels := []string{"a", "b"}
	if got := Frame(panels, 1, 2, Vertical, 1, 1, 1); got != "a\n " {
		t.Fatalf("rest frame = %q", got)
	}
	if got := Frame(panels, 1, 2, Vertical, 1, 2, 0.5); got != " \nb" {
		t.Fatalf("mid frame = %q", got)
	}
}

func TestFrameDegenerate(t *testing.T) {
	if got := Frame(nil, 10, 2, Horizontal, 1, 1, 1); got != "" {
		t.Fatalf("empty panels rendered %q", got)
	}
	if got := Frame([]string{"x"}, 0, 2, Horizontal, 1, 1, 1); got != "" {
		t.Fatalf("zero width rendered %q", got)
	}
}

func TestCutColumnsWideRunes(t *testing.T) {
	tests := []struct {
		s            string
		start, width int
		want         string
	}{
		{"ab", 0, 4, "ab  "},
		{"ab", 3, 2, "  "},
		{"abcdef", 2, 3, "cde"},
		{"日本", 0, 4, "日本"},
		{"日本", 1, 2, "  "},
		{"日本", 0, 3, "日 "},
	}
	for _, tt := range tests {
		if got := cutColumns(tt.s, tt.start, tt.width); got != tt.want {
			t.Fatalf("cutColumns(%q, %d, %d) = %q, want %q", tt.s, tt.start, tt.width, got, tt.want)
		}
	}
}

func TestEaseIsMonotonic(t *testing.T) {
	prev := ease(0)
	for i := 1; i <= 20; i++ {
		cur := ease(float64(i) / 20)
		if cur < prev {
			t.Fatalf("ease decreased at step %d: %v < %v", i, cur, prev)
		}
		prev = cur
	}
	if ease(1) != 1 || ease(0) != 0 {
		t.Fatal("ease endpoints not pinned")
	}
}
