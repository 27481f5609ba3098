package layout

import (
	"reflect"
	"strings"
	"testing"
)

// fixedWidth measures every rune as the same number of pixels.
type fixedWidth float64

func (f fixedWidth) Advance(s string) float64 {
	return float64(len([]rune(s))) * float64(f)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "hello world", 200, []string{"hello world"}},
		{"exact fit", "hello world", 110, []string{"hello world"}},
		{"splits", "hello world again", 110, []string{"hello world", "again"}},
		{"long word alone", "a extraordinarily b", 50, []string{"a", "extraordinarily", "b"}},
		{"first word too long", "extraordinarily b", 50, []string{"extraordinarily", "b"}},
		{"collapses whitespace", "  one \t two\n three ", 1000, []string{"one two three"}},
		{"empty", "", 100, nil},
		{"whitespace only", "   ", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, fixedWidth(10), tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestWrapPreservesWords(t *testing.T) {
	text := "Coffee is the second most traded commodity on Earth, right behind crude oil."
	m := fixedWidth(20)
	maxWidth := 400.0

	lines := Wrap(text, m, maxWidth)
	if got := strings.Join(lines, " "); got != strings.Join(strings.Fields(text), " ") {
		t.Errorf("rejoined lines differ from input: %q", got)
	}
	for i, line := range lines {
		if m.Advance(line) > maxWidth && strings.Contains(line, " ") {
			t.Errorf("line %d %q overflows with more than one word", i, line)
		}
	}
}

func TestCenterOffset(t *testing.T) {
	if got := CenterOffset(920, 400); got != 260 {
		t.Errorf("CenterOffset = %f, want 260", got)
	}
	if got := CenterOffset(100, 140); got != -20 {
		t.Errorf("wider item should yield negative offset, got %f", got)
	}
}

func TestBlockStart(t *testing.T) {
	if got := BlockStart(100, 500, 200); got != 200 {
		t.Errorf("BlockStart = %f, want 200", got)
	}
	if got := BlockStart(100, 300, 400); got != 100 {
		t.Errorf("tall block should clamp to top, got %f", got)
	}
}
