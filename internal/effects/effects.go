// Package effects holds the procedural decoration of the frame: twinkling
// sparkles drawn every frame and coffee beans baked into the background.
package effects

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// Effect draws itself onto a transparent layer for the given frame.
type Effect interface {
	Draw(dc *gg.Context, frame int) error
}

// setColor sets the gg brush from 8-bit channels with an extra opacity factor
// applied to alpha.
func setColor(dc *gg.Context, c color.NRGBA, opacity float64) {
	dc.SetRGBA(
		float64(c.R)/255,
		float64(c.G)/255,
		float64(c.B)/255,
		float64(c.A)/255*opacity,
	)
}

// wrap returns v modulo m in [0, m).
func wrap(v, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		return 0
	}
	return r
}
