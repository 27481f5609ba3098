// Package episode loads the content record a video is rendered from.
package episode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Known content kinds. Other kinds are accepted and kept as is.
const (
	KindFact       = "fact"
	KindCoffeeShop = "coffee_shop"
)

var defaultHeaders = map[string]string{
	KindFact:       "DID YOU KNOW THAT...",
	KindCoffeeShop: "COFFEE SHOP SPOTLIGHT",
}

// Episode is one content record. Each caption in Texts becomes a scene.
type Episode struct {
	Number int      `yaml:"episode" json:"episode"`
	Kind   string   `yaml:"type" json:"type"`
	Header string   `yaml:"header" json:"header"`
	Texts  []string `yaml:"texts,omitempty" json:"texts,omitempty"`

	// Text is the single caption of older one-scene records.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
}

// ValidationError reports a content record that cannot be rendered.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "episode: " + e.Reason
	}
	return fmt.Sprintf("episode %s: %s", e.Path, e.Reason)
}

// Load reads a record from a JSON or YAML file, normalizes it and validates it.
func Load(path string) (*Episode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read episode: %w", err)
	}
	ep, err := Parse(data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return nil, verr
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ep, nil
}

// Parse decodes a record. JSON input is accepted since it is valid YAML.
func Parse(data []byte) (*Episode, error) {
	var ep Episode
	if err := yaml.Unmarshal(data, &ep); err != nil {
		return nil, err
	}
	ep.Normalize()
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return &ep, nil
}

// Normalize folds the legacy single caption into Texts, NFC-normalizes and
// trims every string, and fills in the header of known kinds.
func (e *Episode) Normalize() {
	if len(e.Texts) == 0 && strings.TrimSpace(e.Text) != "" {
		e.Texts = []string{e.Text}
	}
	e.Text = ""
	for i, t := range e.Texts {
		e.Texts[i] = clean(t)
	}
	e.Kind = clean(e.Kind)
	e.Header = clean(e.Header)
	if e.Header == "" {
		e.Header = defaultHeaders[e.Kind]
	}
}

func clean(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Validate checks the record can be rendered.
func (e *Episode) Validate() error {
	if e.Number < 1 {
		return &ValidationError{Reason: fmt.Sprintf("episode number must be at least 1, got %d", e.Number)}
	}
	if len(e.Texts) == 0 {
		return &ValidationError{Reason: "no captions"}
	}
	for i, t := range e.Texts {
		if t == "" {
			return &ValidationError{Reason: fmt.Sprintf("caption %d is empty", i+1)}
		}
	}
	return nil
}

// VideoName is the file name of the rendered video.
func (e *Episode) VideoName() string {
	return fmt.Sprintf("episode_%04d.mp4", e.Number)
}

// FindLatest returns the most recently modified episode_* record in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read episodes directory: %w", err)
	}

	type candidate struct {
		path string
		info os.FileInfo
	}
	var records []candidate
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "episode_") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		records = append(records, candidate{path: filepath.Join(dir, name), info: info})
	}

	if len(records) == 0 {
		return "", fmt.Errorf("no episode records found in %s", dir)
	}

	// newest first, name breaks ties
	sort.Slice(records, func(i, j int) bool {
		ti, tj := records[i].info.ModTime(), records[j].info.ModTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return records[i].path > records[j].path
	})

	return records[0].path, nil
}
