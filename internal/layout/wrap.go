// Package layout breaks captions into lines that fit a pixel width.
package layout

import "strings"

// Measurer reports the rendered width of a string. text.Face from
// github.com/gogpu/gg/text satisfies it.
type Measurer interface {
	Advance(s string) float64
}

// Wrap splits text into lines no wider than maxWidth using greedy word
// accumulation. A single word wider than maxWidth is kept whole on its own
// line. Empty or whitespace-only text yields no lines.
func Wrap(text string, m Measurer, maxWidth float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Advance(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// CenterOffset returns the left offset that centers an item of width inner
// inside a container of width outer.
func CenterOffset(outer, inner float64) float64 {
	return (outer - inner) / 2
}

// BlockStart returns the top of a block of the given height centered
// vertically between top and bottom. The block never starts above top.
func BlockStart(top, bottom, height float64) float64 {
	start := top + (bottom-top-height)/2
	if start < top {
		return top
	}
	return start
}
