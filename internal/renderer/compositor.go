package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"github.com/ivlev/card2video/internal/director"
	"github.com/ivlev/card2video/internal/effects"
	"github.com/ivlev/card2video/internal/system"
)

// Compositor turns a frame number into a finished raster. Compose is a pure
// function of the frame, the assets, the effect and the timeline, and is
// safe for concurrent use.
type Compositor struct {
	assets   *Assets
	effect   effects.Effect
	timeline *director.Timeline
	bounds   image.Rectangle
	layers   sync.Pool // *gg.Context for the per-frame effect layer
}

// NewCompositor wires the static assets, the animated effect layer (may be
// nil) and the timeline together.
func NewCompositor(assets *Assets, effect effects.Effect, timeline *director.Timeline) (*Compositor, error) {
	if len(assets.Scenes) < timeline.Scenes {
		return nil, fmt.Errorf("compositor: %d scene sprites for %d scenes", len(assets.Scenes), timeline.Scenes)
	}
	c := &Compositor{
		assets:   assets,
		effect:   effect,
		timeline: timeline,
		bounds:   assets.Background.Rect,
	}
	w, h := c.bounds.Dx(), c.bounds.Dy()
	c.layers.New = func() any { return gg.NewContext(w, h) }
	return c, nil
}

// Bounds is the frame size.
func (c *Compositor) Bounds() image.Rectangle {
	return c.bounds
}

// Compose renders frame. The returned image is opaque and comes from
// system.GetImage; callers may hand it back with system.PutImage.
func (c *Compositor) Compose(frame int) (*image.RGBA, error) {
	a := c.assets
	canvas := system.GetCanvas(c.bounds)
	defer system.PutCanvas(canvas)
	copy(canvas.Pix, a.Background.Pix)

	if c.effect != nil {
		dc := c.layers.Get().(*gg.Context)
		dc.Clear()
		err := c.effect.Draw(dc, frame)
		if err == nil {
			err = dc.FlushGPU()
		}
		if err != nil {
			c.layers.Put(dc)
			return nil, fmt.Errorf("frame %d effect layer: %w", frame, err)
		}
		OverPremultiplied(canvas, layerView(dc), image.Point{}, 1)
		c.layers.Put(dc)
	}

	draw := func(s Sprite, opacity float64) {
		if !s.Empty() && s.Bounds().Overlaps(c.bounds) {
			Over(canvas, s.Image, s.At, opacity)
		}
	}

	draw(a.Banner, 1)

	info := c.timeline.Scene(frame)
	if info.CardOpacity > 0 {
		draw(a.Shadow, info.CardOpacity)
		draw(a.Card, info.CardOpacity)
	}
	if info.TextOpacity > 0 {
		scene := a.Scenes[info.Index]
		draw(scene.Chrome, info.TextOpacity)
		for i, line := range scene.Lines {
			opacity, offset := c.timeline.LineReveal(info, i)
			if opacity <= 0 {
				continue
			}
			Over(canvas, line.Image, line.At.Add(image.Pt(0, int(math.Round(offset)))), opacity)
		}
	}

	Flatten(canvas)
	for _, s := range a.Watermark {
		draw(s, 1)
	}

	out := system.GetImage(c.bounds)
	toRGBA(out, canvas)
	return out, nil
}
