package renderer

import (
	"image/color"
	"math"
)

// Palette of the warm coffee look.
var (
	backgroundColor = color.NRGBA{R: 210, G: 180, B: 140, A: 255}
	cardColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	shadowColor     = color.NRGBA{R: 180, G: 155, B: 120, A: 80}
	pillColor       = color.NRGBA{R: 62, G: 39, B: 22, A: 255}
	pillTextColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	headerColor     = color.NRGBA{R: 62, G: 39, B: 22, A: 255}
	mutedColor      = color.NRGBA{R: 160, G: 130, B: 100, A: 255}
	captionColor    = color.NRGBA{R: 50, G: 40, B: 30, A: 255}
)

const (
	dividerAlpha   = 128
	watermarkAlpha = 180
	inactiveDotA   = 110
)

// Layout holds the frame geometry in pixels. It is designed for a 1080 px
// wide frame and scales linearly with the width.
type Layout struct {
	Width, Height int
	Scale         float64

	CardX, CardY float64
	CardW, CardH float64
	CardRadius   float64
	ShadowDX     float64
	ShadowDY     float64

	PillTop  float64
	PillPadX float64
	PillPadY float64

	DotsY        float64
	DotRadius    float64
	DotSpacing   float64
	DividerY     float64
	DividerInset float64
	HeaderTop    float64

	CaptionTop    float64
	CaptionBottom float64
	CaptionWidth  float64
	LineHeight    float64

	WatermarkTop float64
	QRSize       float64

	PillFont      float64
	HeaderFont    float64
	CaptionFont   float64
	WatermarkFont float64
}

// NewLayout computes the geometry for a width x height frame.
func NewLayout(width, height int) Layout {
	s := float64(width) / 1080
	l := Layout{
		Width:  width,
		Height: height,
		Scale:  s,

		CardW:      float64(width) - 2*80*s,
		CardH:      900 * s,
		CardRadius: 40 * s,
		ShadowDX:   6 * s,
		ShadowDY:   10 * s,

		PillTop:  140 * s,
		PillPadX: 50 * s,
		PillPadY: 18 * s,

		DotRadius:    7 * s,
		DotSpacing:   28 * s,
		DividerInset: 100 * s,

		LineHeight: 56 * s,
		QRSize:     140 * s,

		PillFont:      36 * s,
		HeaderFont:    44 * s,
		CaptionFont:   40 * s,
		WatermarkFont: 24 * s,
	}
	l.CardX = 80 * s
	l.CardY = math.Floor((float64(height)-l.CardH)/2) + 40*s
	l.DotsY = l.CardY + 45*s
	l.DividerY = l.CardY + 80*s
	l.HeaderTop = l.CardY + 120*s
	l.CaptionTop = l.HeaderTop + 90*s
	l.CaptionBottom = l.CardY + l.CardH - 80*s
	l.CaptionWidth = l.CardW - 120*s
	l.WatermarkTop = float64(height) - 100*s
	return l
}
