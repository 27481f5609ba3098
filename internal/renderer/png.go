package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/ivlev/card2video/internal/system"
)

// Frames are written once and read once by the encoder, so speed wins over size.
var pngEncoder = png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &system.PNGBufferPool{},
}

// WritePNG encodes img to path. Opaque images are stored as 8-bit RGB.
func WritePNG(path string, img image.Image) error {
	buf := system.ByteBuffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer system.ByteBuffers.Put(buf)

	if err := pngEncoder.Encode(buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}
