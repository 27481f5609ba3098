package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/effects"
	"github.com/ivlev/card2video/internal/episode"
	"github.com/ivlev/card2video/internal/layout"
)

// SceneSprites are the content rasters of one caption.
type SceneSprites struct {
	Chrome Sprite   // progress dots, divider and header
	Lines  []Sprite // one per wrapped caption line, at its resting position
	Text   []string // the wrapped lines
}

// Assets is every frame-invariant raster of a render. It is built once and
// read concurrently by all frame workers.
type Assets struct {
	Layout     Layout
	Background *image.NRGBA // opaque, includes the beans
	Banner     Sprite
	Shadow     Sprite
	Card       Sprite
	Scenes     []SceneSprites
	Watermark  []Sprite
}

// NewAssets renders the static layers for ep. beans may be nil.
func NewAssets(cfg *config.Config, ep *episode.Episode, fonts *Fonts, beans *effects.BeanField) (*Assets, error) {
	l := NewLayout(cfg.Width, cfg.Height)
	a := &Assets{Layout: l}

	bg, err := background(l, beans)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	a.Background = bg

	if a.Banner, err = banner(l, fonts, cfg.BannerText); err != nil {
		return nil, fmt.Errorf("banner: %w", err)
	}
	if a.Shadow, err = roundedRect(l.CardX+l.ShadowDX, l.CardY+l.ShadowDY, l.CardW, l.CardH, l.CardRadius, shadowColor); err != nil {
		return nil, fmt.Errorf("card shadow: %w", err)
	}
	if a.Card, err = roundedRect(l.CardX, l.CardY, l.CardW, l.CardH, l.CardRadius, cardColor); err != nil {
		return nil, fmt.Errorf("card: %w", err)
	}

	for i, caption := range ep.Texts {
		scene, err := sceneSprites(l, fonts, ep.Header, caption, i, len(ep.Texts))
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
		a.Scenes = append(a.Scenes, scene)
	}

	if a.Watermark, err = watermark(l, fonts, cfg.WatermarkText, cfg.WatermarkQR); err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	return a, nil
}

func background(l Layout, beans *effects.BeanField) (*image.NRGBA, error) {
	dc := gg.NewContext(l.Width, l.Height)
	defer dc.Close()

	c := backgroundColor
	dc.ClearWithColor(gg.RGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255))
	if beans != nil {
		if err := beans.Draw(dc); err != nil {
			return nil, err
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	img := unpremultiply(dc.Image())
	Flatten(img)
	return img, nil
}

func banner(l Layout, fonts *Fonts, label string) (Sprite, error) {
	if label == "" {
		return Sprite{}, nil
	}
	face := fonts.Bold.Face(l.PillFont)
	m := face.Metrics()
	w := face.Advance(label) + 2*l.PillPadX
	h := m.Ascent + m.Descent + 2*l.PillPadY
	x := math.Round(layout.CenterOffset(float64(l.Width), w))
	y := l.PillTop

	return renderSprite(x, y, w, h, func(dc *gg.Context, ox, oy float64) error {
		dc.DrawRoundedRectangle(x-ox, y-oy, w, h, h/2)
		setColor(dc, pillColor)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetFont(face)
		setColor(dc, pillTextColor)
		dc.DrawString(label, x-ox+l.PillPadX, y-oy+l.PillPadY+m.Ascent)
		return nil
	})
}

func roundedRect(x, y, w, h, r float64, c color.NRGBA) (Sprite, error) {
	return renderSprite(x, y, w, h, func(dc *gg.Context, ox, oy float64) error {
		dc.DrawRoundedRectangle(x-ox, y-oy, w, h, r)
		setColor(dc, c)
		return dc.Fill()
	})
}

func sceneSprites(l Layout, fonts *Fonts, header, caption string, index, count int) (SceneSprites, error) {
	var scene SceneSprites

	headerFace := fonts.Bold.Face(l.HeaderFont)
	hm := headerFace.Metrics()
	chromeH := l.HeaderTop - l.CardY + hm.Ascent + hm.Descent + 4*l.Scale

	chrome, err := renderSprite(l.CardX, l.CardY, l.CardW, chromeH, func(dc *gg.Context, ox, oy float64) error {
		first := l.CardX + l.CardW/2 - float64(count-1)*l.DotSpacing/2
		for i := 0; i < count; i++ {
			r, c := l.DotRadius*0.75, withAlpha(mutedColor, inactiveDotA)
			if i == index {
				r, c = l.DotRadius, headerColor
			}
			dc.DrawCircle(first+float64(i)*l.DotSpacing-ox, l.DotsY-oy, r)
			setColor(dc, c)
			if err := dc.Fill(); err != nil {
				return err
			}
		}

		dc.SetLineWidth(math.Max(1, 2*l.Scale))
		dc.DrawLine(l.CardX+l.DividerInset-ox, l.DividerY-oy, l.CardX+l.CardW-l.DividerInset-ox, l.DividerY-oy)
		setColor(dc, withAlpha(mutedColor, dividerAlpha))
		if err := dc.Stroke(); err != nil {
			return err
		}

		if header != "" {
			x := l.CardX + layout.CenterOffset(l.CardW, headerFace.Advance(header))
			dc.SetFont(headerFace)
			setColor(dc, headerColor)
			dc.DrawString(header, x-ox, l.HeaderTop-oy+hm.Ascent)
		}
		return nil
	})
	if err != nil {
		return scene, err
	}
	scene.Chrome = chrome

	face := fonts.Regular.Face(l.CaptionFont)
	scene.Text = layout.Wrap(caption, face, l.CaptionWidth)
	start := layout.BlockStart(l.CaptionTop, l.CaptionBottom, float64(len(scene.Text))*l.LineHeight)
	pad := math.Ceil(4 * l.Scale)

	for i, line := range scene.Text {
		x := math.Round(l.CardX + layout.CenterOffset(l.CardW, face.Advance(line)))
		y := math.Round(start + float64(i)*l.LineHeight)
		sprite, err := textSprite(line, face, captionColor, x, y, pad)
		if err != nil {
			return scene, fmt.Errorf("line %d: %w", i, err)
		}
		scene.Lines = append(scene.Lines, sprite)
	}
	return scene, nil
}

func watermark(l Layout, fonts *Fonts, label, qrContent string) ([]Sprite, error) {
	var sprites []Sprite
	c := withAlpha(mutedColor, watermarkAlpha)

	if qrContent != "" {
		size := math.Round(l.QRSize)
		at := image.Pt(int(math.Round(layout.CenterOffset(float64(l.Width), size))), int(l.WatermarkTop-size-16*l.Scale))
		qr, err := qrSprite(qrContent, size, c, at)
		if err != nil {
			return nil, fmt.Errorf("qr code: %w", err)
		}
		sprites = append(sprites, qr)
	}

	if label != "" {
		face := fonts.Regular.Face(l.WatermarkFont)
		x := math.Round(layout.CenterOffset(float64(l.Width), face.Advance(label)))
		text, err := textSprite(label, face, c, x, l.WatermarkTop, math.Ceil(2*l.Scale))
		if err != nil {
			return nil, err
		}
		sprites = append(sprites, text)
	}
	return sprites, nil
}
