package renderer

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Over composites src onto dst with the source origin placed at at. Both
// images carry straight alpha; opacity scales the source alpha. Pixels
// outside dst are skipped.
func Over(dst, src *image.NRGBA, at image.Point, opacity float64) {
	if src == nil {
		return
	}
	composite(dst, src.Pix, src.Stride, src.Rect, at, opacity, false)
}

// OverPremultiplied is Over for a source with premultiplied alpha, such as
// the live buffer of a gg context.
func OverPremultiplied(dst *image.NRGBA, src *image.RGBA, at image.Point, opacity float64) {
	if src == nil {
		return
	}
	composite(dst, src.Pix, src.Stride, src.Rect, at, opacity, true)
}

func composite(dst *image.NRGBA, pix []uint8, stride int, rect image.Rectangle, at image.Point, opacity float64, premul bool) {
	if opacity <= 0 {
		return
	}
	k := uint32(math.Round(math.Min(opacity, 1) * 255))
	if k == 0 {
		return
	}

	area := rect.Sub(rect.Min).Add(at).Intersect(dst.Rect)
	if area.Empty() {
		return
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		si := (y-at.Y)*stride + (area.Min.X-at.X)*4
		di := dst.PixOffset(area.Min.X, y)
		for x := area.Min.X; x < area.Max.X; x, si, di = x+1, si+4, di+4 {
			s := pix[si : si+4 : si+4]
			sa := (uint32(s[3])*k + 127) / 255
			if sa == 0 {
				continue
			}
			d := dst.Pix[di : di+4 : di+4]

			// source color scaled by its final alpha, in units of 1/255^2
			var pr, pg, pb uint32
			if premul {
				pr, pg, pb = uint32(s[0])*k, uint32(s[1])*k, uint32(s[2])*k
			} else {
				pr, pg, pb = uint32(s[0])*sa, uint32(s[1])*sa, uint32(s[2])*sa
			}
			blend(d, pr, pg, pb, sa)
		}
	}
}

// blend puts a source pixel over the straight-alpha pixel d. pr, pg and pb
// are the source channels multiplied by sa.
func blend(d []uint8, pr, pg, pb, sa uint32) {
	if sa == 255 {
		d[0], d[1], d[2], d[3] = channel(pr*255, 65025), channel(pg*255, 65025), channel(pb*255, 65025), 255
		return
	}
	// dst weight in units of 1/255^2
	dw := uint32(d[3]) * (255 - sa)
	outA := sa*255 + dw
	d[0] = channel(pr*255+uint32(d[0])*dw, outA)
	d[1] = channel(pg*255+uint32(d[1])*dw, outA)
	d[2] = channel(pb*255+uint32(d[2])*dw, outA)
	d[3] = uint8((outA + 127) / 255)
}

func channel(num, den uint32) uint8 {
	v := (num + den/2) / den
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Flatten makes img fully opaque. Colors are unchanged: every frame starts
// from the opaque background so no pixel is partially covered.
func Flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
}

// toRGBA copies an opaque NRGBA image into dst, which must have the same
// bounds. Opaque straight and premultiplied pixels are identical.
func toRGBA(dst *image.RGBA, src *image.NRGBA) {
	copy(dst.Pix, src.Pix)
}

// unpremultiply converts a gg image to straight alpha. The pixel buffer of
// an *image.RGBA is converted in place and shared with the result.
func unpremultiply(img image.Image) *image.NRGBA {
	switch v := img.(type) {
	case *image.NRGBA:
		return v
	case *image.RGBA:
		for i := 0; i+3 < len(v.Pix); i += 4 {
			p := v.Pix[i : i+4 : i+4]
			switch a := uint32(p[3]); a {
			case 0:
				p[0], p[1], p[2] = 0, 0, 0
			case 255:
			default:
				p[0] = channel(uint32(p[0])*255, a)
				p[1] = channel(uint32(p[1])*255, a)
				p[2] = channel(uint32(p[2])*255, a)
			}
		}
		return &image.NRGBA{Pix: v.Pix, Stride: v.Stride, Rect: v.Rect}
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// layerView exposes the live premultiplied buffer of dc without copying it.
func layerView(dc *gg.Context) *image.RGBA {
	pm := dc.ResizeTarget()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * pm.Width(),
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}
