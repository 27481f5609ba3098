package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is the frame schedule of one episode as written to disk.
type Plan struct {
	Episode    int         `yaml:"episode"`
	FPS        int         `yaml:"fps"`
	Duration   float64     `yaml:"duration"`
	Frames     int         `yaml:"frames"`
	TailFrames int         `yaml:"tail_frames"`
	Scenes     []PlanScene `yaml:"scenes"`
}

// PlanScene is one scene window plus the caption it shows.
type PlanScene struct {
	Index     int    `yaml:"index"`
	Caption   string `yaml:"caption"`
	Start     int    `yaml:"start"`
	FadeInEnd int    `yaml:"fade_in_end"`
	HoldEnd   int    `yaml:"hold_end"`
	End       int    `yaml:"end"`
}

// NewPlan describes tl with the captions of an episode.
func NewPlan(tl *Timeline, episode int, captions []string) *Plan {
	p := &Plan{
		Episode:    episode,
		FPS:        tl.FPS,
		Duration:   tl.TotalDuration,
		Frames:     tl.TotalFrames(),
		TailFrames: tl.TailFrames(),
	}
	for _, w := range tl.Windows() {
		s := PlanScene{
			Index:     w.Scene,
			Start:     w.Start,
			FadeInEnd: w.FadeInEnd,
			HoldEnd:   w.HoldEnd,
			End:       w.End,
		}
		if w.Scene < len(captions) {
			s.Caption = captions[w.Scene]
		}
		p.Scenes = append(p.Scenes, s)
	}
	return p
}

// WritePlan writes a plan to a YAML file.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a plan from a YAML file.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}
	return &plan, nil
}
