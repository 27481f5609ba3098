package renderer

import (
	"fmt"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts are the two font sources every text element is drawn with. Sources
// are safe for concurrent use.
type Fonts struct {
	Regular *text.FontSource
	Bold    *text.FontSource
}

// LoadFonts loads TrueType/OpenType fonts from disk. An empty path selects
// the embedded Go font of that weight.
func LoadFonts(regularPath, boldPath string) (*Fonts, error) {
	regular, err := loadFont(regularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := loadFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &Fonts{Regular: regular, Bold: bold}, nil
}

func loadFont(path string, fallback []byte) (*text.FontSource, error) {
	if path == "" {
		return text.NewFontSource(fallback)
	}
	return text.NewFontSourceFromFile(path)
}
