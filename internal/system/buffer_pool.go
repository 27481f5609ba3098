package system

import (
	"bytes"
	"image"
	"image/png"
	"sync"
)

// ImagePool reuses frame-sized images to keep garbage collector load low
// when thousands of frames go through the same few buffers.
type ImagePool[T image.Image] struct {
	newImage func(image.Rectangle) T
	pools    map[image.Rectangle]*sync.Pool
	mu       sync.RWMutex
}

func newImagePool[T image.Image](fn func(image.Rectangle) T) *ImagePool[T] {
	return &ImagePool[T]{newImage: fn, pools: make(map[image.Rectangle]*sync.Pool)}
}

var (
	framePool  = newImagePool(image.NewRGBA)
	canvasPool = newImagePool(image.NewNRGBA)
)

// GetImage returns an *image.RGBA of the given bounds. Contents are undefined.
func GetImage(rect image.Rectangle) *image.RGBA {
	return framePool.Get(rect)
}

// PutImage hands img back for reuse.
func PutImage(img *image.RGBA) {
	if img != nil {
		framePool.Put(img.Rect, img)
	}
}

// GetCanvas returns an *image.NRGBA of the given bounds. Contents are undefined.
func GetCanvas(rect image.Rectangle) *image.NRGBA {
	return canvasPool.Get(rect)
}

// PutCanvas hands img back for reuse.
func PutCanvas(img *image.NRGBA) {
	if img != nil {
		canvasPool.Put(img.Rect, img)
	}
}

func (p *ImagePool[T]) Get(rect image.Rectangle) T {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[rect]
		if !exists {
			pool = &sync.Pool{
				New: func() any {
					return p.newImage(rect)
				},
			}
			p.pools[rect] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(T)
}

func (p *ImagePool[T]) Put(rect image.Rectangle, img T) {
	p.mu.RLock()
	pool, exists := p.pools[rect]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}

// PNGBufferPool lets concurrent png.Encoders share their scratch buffers.
type PNGBufferPool struct {
	pool sync.Pool
}

func (p *PNGBufferPool) Get() *png.EncoderBuffer {
	b, _ := p.pool.Get().(*png.EncoderBuffer)
	return b
}

func (p *PNGBufferPool) Put(b *png.EncoderBuffer) {
	p.pool.Put(b)
}

// ByteBuffers pools the in-memory PNG output before it is written to disk.
var ByteBuffers = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}
