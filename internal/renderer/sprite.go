package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// Sprite is a pre-rendered raster placed at a fixed frame position.
type Sprite struct {
	Image *image.NRGBA
	At    image.Point
}

// Empty reports whether there is nothing to draw.
func (s Sprite) Empty() bool {
	return s.Image == nil
}

// Bounds returns the frame area covered by the sprite.
func (s Sprite) Bounds() image.Rectangle {
	if s.Image == nil {
		return image.Rectangle{}
	}
	return s.Image.Rect.Sub(s.Image.Rect.Min).Add(s.At)
}

// painter draws in frame coordinates minus the sprite origin (ox, oy).
type painter func(dc *gg.Context, ox, oy float64) error

// renderSprite rasterizes the frame area (x, y, w, h) with paint. The area is
// widened to whole pixels.
func renderSprite(x, y, w, h float64, paint painter) (Sprite, error) {
	left, top := math.Floor(x), math.Floor(y)
	cw := max(1, int(math.Ceil(x+w-left)))
	ch := max(1, int(math.Ceil(y+h-top)))

	dc := gg.NewContext(cw, ch)
	defer dc.Close()
	if err := paint(dc, left, top); err != nil {
		return Sprite{}, err
	}
	if err := dc.FlushGPU(); err != nil {
		return Sprite{}, err
	}
	return Sprite{Image: unpremultiply(dc.Image()), At: image.Pt(int(left), int(top))}, nil
}

func setColor(dc *gg.Context, c color.NRGBA) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// textSprite renders one line of text whose top-left corner is at (x, y).
func textSprite(s string, face text.Face, c color.NRGBA, x, y, pad float64) (Sprite, error) {
	m := face.Metrics()
	w := face.Advance(s)
	return renderSprite(x-pad, y-pad, w+2*pad, m.Ascent+m.Descent+2*pad, func(dc *gg.Context, ox, oy float64) error {
		dc.SetFont(face)
		setColor(dc, c)
		dc.DrawString(s, x-ox, y-oy+m.Ascent)
		return nil
	})
}

// qrSprite renders content as a size x size QR code in color c on a
// transparent background.
func qrSprite(content string, size float64, c color.NRGBA, at image.Point) (Sprite, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return Sprite{}, err
	}
	bits := q.Bitmap()
	modules := image.NewNRGBA(image.Rect(0, 0, len(bits), len(bits)))
	for y, row := range bits {
		for x, on := range row {
			if on {
				modules.SetNRGBA(x, y, c)
			}
		}
	}

	px := max(len(bits), int(math.Round(size)))
	out := image.NewNRGBA(image.Rect(0, 0, px, px))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), modules, modules.Bounds(), xdraw.Src, nil)
	return Sprite{Image: out, At: at}, nil
}
