package effects

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/gogpu/gg"
)

// Sparkles below this opacity are not drawn.
const cullOpacity = 0.05

// Sparkle is a golden four-point star that twinkles and drifts upwards.
type Sparkle struct {
	X, Y   float64 // position at frame 0
	Size   float64
	Phase  float64
	Speed  float64 // radians per second
	DX, DY float64 // drift, pixels per frame at 30 fps
	Color  color.NRGBA
}

// NewSparkle draws one sparkle from rng for a width x height frame.
func NewSparkle(rng *rand.Rand, width, height int) Sparkle {
	s := Sparkle{
		X:     float64(rng.Intn(width + 1)),
		Y:     float64(rng.Intn(height + 1)),
		Size:  2 + rng.Float64()*4,
		Phase: rng.Float64() * 2 * math.Pi,
		Speed: 1.5 + rng.Float64()*2.5,
		DX:    -0.3 + rng.Float64()*0.6,
		DY:    -0.8 + rng.Float64()*0.6,
	}
	b := 180 + rng.Intn(76)
	s.Color = color.NRGBA{R: uint8(b), G: uint8(float64(b) * 0.85), B: 0, A: 255}
	return s
}

// Opacity returns the twinkle level in [0, 1] at the given frame.
func (s Sparkle) Opacity(frame, fps int) float64 {
	t := float64(frame) / float64(fps)
	o := 0.5 + 0.5*math.Sin(s.Speed*t+s.Phase)
	return math.Max(0, math.Min(1, o))
}

// Position returns the drifted position wrapped into the frame.
func (s Sparkle) Position(frame, fps, width, height int) (x, y float64) {
	t := float64(frame) / float64(fps)
	x = wrap(s.X+s.DX*t*30, float64(width))
	y = wrap(s.Y+s.DY*t*30, float64(height))
	return x, y
}

// SparkleField is the fixed set of sparkles of one render.
type SparkleField struct {
	Sparkles []Sparkle
	Width    int
	Height   int
	FPS      int
}

// NewSparkleField draws n sparkles from rng.
func NewSparkleField(rng *rand.Rand, n, width, height, fps int) *SparkleField {
	f := &SparkleField{
		Sparkles: make([]Sparkle, n),
		Width:    width,
		Height:   height,
		FPS:      fps,
	}
	for i := range f.Sparkles {
		f.Sparkles[i] = NewSparkle(rng, width, height)
	}
	return f
}

// Visible reports how many sparkles are drawn at the given frame.
func (f *SparkleField) Visible(frame int) int {
	n := 0
	for _, s := range f.Sparkles {
		if s.Opacity(frame, f.FPS) >= cullOpacity {
			n++
		}
	}
	return n
}

// Draw renders every visible sparkle onto dc.
func (f *SparkleField) Draw(dc *gg.Context, frame int) error {
	for _, s := range f.Sparkles {
		op := s.Opacity(frame, f.FPS)
		if op < cullOpacity {
			continue
		}
		x, y := s.Position(frame, f.FPS, f.Width, f.Height)
		r := s.Size * (0.5 + 0.5*op)

		// color channels fade with opacity as well as alpha
		c := color.NRGBA{
			R: uint8(float64(s.Color.R) * op),
			G: uint8(float64(s.Color.G) * op),
			B: uint8(float64(s.Color.B) * op),
			A: 255,
		}
		setColor(dc, c, op)

		dc.SetLineWidth(math.Max(1, math.Floor(r*0.5)))
		dc.DrawLine(x, y-2*r, x, y+2*r)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawLine(x-2*r, y, x+2*r, y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawCircle(x, y, r)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}
