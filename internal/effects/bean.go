package effects

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/gogpu/gg"
)

var beanShades = [2]color.NRGBA{
	{R: 111, G: 78, B: 55, A: 255},
	{R: 139, G: 94, B: 60, A: 255},
}

// Bean is a faint coffee bean silhouette on the background.
type Bean struct {
	X, Y     float64
	Size     float64 // semi-major axis
	Rotation float64 // radians
	Shade    color.NRGBA
}

// NewBean draws one bean from rng for a width x height frame.
func NewBean(rng *rand.Rand, width, height int) Bean {
	b := Bean{
		X:        rng.Float64() * float64(width),
		Y:        rng.Float64() * float64(height),
		Size:     18 + rng.Float64()*24,
		Rotation: rng.Float64() * 2 * math.Pi,
	}
	b.Shade = beanShades[rng.Intn(len(beanShades))]
	b.Shade.A = uint8(25 + rng.Intn(31))
	return b
}

func (b Bean) crease() color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(b.Shade.R) * 0.6),
		G: uint8(float64(b.Shade.G) * 0.6),
		B: uint8(float64(b.Shade.B) * 0.6),
		A: b.Shade.A,
	}
}

// Draw renders the bean body and its crease.
func (b Bean) Draw(dc *gg.Context) error {
	dc.Push()
	defer dc.Pop()

	dc.RotateAbout(b.Rotation, b.X, b.Y)
	dc.DrawEllipse(b.X, b.Y, b.Size, b.Size*0.62)
	setColor(dc, b.Shade, 1)
	if err := dc.Fill(); err != nil {
		return err
	}

	half := b.Size * 0.7
	dc.SetLineWidth(math.Max(1.5, b.Size/10))
	dc.DrawLine(b.X-half, b.Y, b.X+half, b.Y)
	setColor(dc, b.crease(), 1)
	return dc.Stroke()
}

// BeanField is the fixed set of beans of one render. It is drawn once into
// the background sprite.
type BeanField struct {
	Beans []Bean
}

// NewBeanField draws n beans from rng.
func NewBeanField(rng *rand.Rand, n, width, height int) *BeanField {
	f := &BeanField{Beans: make([]Bean, n)}
	for i := range f.Beans {
		f.Beans[i] = NewBean(rng, width, height)
	}
	return f
}

// Draw renders every bean onto dc.
func (f *BeanField) Draw(dc *gg.Context) error {
	for _, b := range f.Beans {
		if err := b.Draw(dc); err != nil {
			return err
		}
	}
	return nil
}
