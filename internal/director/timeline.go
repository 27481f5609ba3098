package director

import (
	"fmt"
	"math"

	"github.com/ivlev/card2video/internal/config"
	"github.com/ivlev/card2video/internal/easing"
)

// SceneInfo is the timing state of a single frame.
type SceneInfo struct {
	Index       int     // caption shown, saturates at the last scene
	CardOpacity float64 // card and its shadow
	TextOpacity float64 // dots, divider, header and caption
	Local       float64 // seconds since the scene started
}

// Timeline maps frame numbers to scenes and fade levels. Every scene is a
// fade-in, a hold and a fade-out of fixed length.
type Timeline struct {
	FPS           int
	Scenes        int
	SceneDuration float64
	FadeDuration  float64
	HoldDuration  float64
	TotalDuration float64
	LineStagger   float64
	LineRise      float64
}

// NewTimeline builds the timeline for a record with the given number of
// captions. The config is expected to be validated.
func NewTimeline(cfg *config.Config, scenes int) (*Timeline, error) {
	if scenes < 1 {
		return nil, fmt.Errorf("timeline: need at least one scene, got %d", scenes)
	}
	return &Timeline{
		FPS:           cfg.FPS,
		Scenes:        scenes,
		SceneDuration: cfg.SceneDuration,
		FadeDuration:  cfg.FadeDuration,
		HoldDuration:  cfg.HoldDuration(),
		TotalDuration: cfg.Duration(scenes),
		LineStagger:   cfg.LineStagger,
		LineRise:      cfg.LineRise,
	}, nil
}

// TotalFrames is the number of frames of the whole video.
func (tl *Timeline) TotalFrames() int {
	return int(math.Round(float64(tl.FPS) * tl.TotalDuration))
}

// Scene returns the timing state of frame.
func (tl *Timeline) Scene(frame int) SceneInfo {
	t := float64(frame) / float64(tl.FPS)
	index := int(math.Floor(t / tl.SceneDuration))
	if index > tl.Scenes-1 {
		index = tl.Scenes - 1
	}
	if index < 0 {
		index = 0
	}
	local := math.Max(0, t-float64(index)*tl.SceneDuration)

	op := tl.opacity(local)
	return SceneInfo{Index: index, CardOpacity: op, TextOpacity: op, Local: local}
}

func (tl *Timeline) opacity(local float64) float64 {
	f := tl.FadeDuration
	switch {
	case local >= tl.SceneDuration:
		// past the last scene window when the video runs longer than its scenes
		return 0
	case local < f:
		return easing.OutCubic(local / f)
	case local < f+tl.HoldDuration:
		return 1
	default:
		progress := easing.Clamp01((local - f - tl.HoldDuration) / f)
		return 1 - easing.InCubic(progress)
	}
}

// LineReveal returns the opacity and downward offset in pixels of caption
// line i. Lines enter one after another, rising into place, and never
// outlive the scene text.
func (tl *Timeline) LineReveal(info SceneInfo, line int) (opacity, offset float64) {
	delayed := info.Local - float64(line)*tl.LineStagger
	var ease float64
	switch {
	case tl.FadeDuration > 0:
		ease = easing.OutCubic(easing.Clamp01(delayed / tl.FadeDuration))
	case delayed >= 0:
		ease = 1
	}
	return math.Min(info.TextOpacity, ease), easing.Lerp(tl.LineRise, 0, ease)
}

// Window lists the frame boundaries of one scene. Start is inclusive, End
// exclusive; all values are clamped to the video length.
type Window struct {
	Scene     int
	Start     int
	FadeInEnd int
	HoldEnd   int
	End       int
}

// Windows returns the frame windows of every scene that appears in the video.
func (tl *Timeline) Windows() []Window {
	total := tl.TotalFrames()
	at := func(sec float64) int {
		return min(total, int(math.Round(sec*float64(tl.FPS))))
	}

	var windows []Window
	for i := 0; i < tl.Scenes; i++ {
		start := float64(i) * tl.SceneDuration
		w := Window{
			Scene:     i,
			Start:     at(start),
			FadeInEnd: at(start + tl.FadeDuration),
			HoldEnd:   at(start + tl.FadeDuration + tl.HoldDuration),
			End:       at(start + tl.SceneDuration),
		}
		if w.Start >= total {
			break
		}
		windows = append(windows, w)
	}
	return windows
}

// TailFrames counts the frames after the last scene window, shown as an
// empty background.
func (tl *Timeline) TailFrames() int {
	end := int(math.Round(float64(tl.Scenes) * tl.SceneDuration * float64(tl.FPS)))
	return max(0, tl.TotalFrames()-end)
}
