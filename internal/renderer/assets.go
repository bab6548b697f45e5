package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"

	applog "github.com/ivlev/actor2video/internal/log"
	"github.com/ivlev/actor2video/internal/source"
)

type scaledKey struct {
	path string
	size image.Point
}

// Assets shares loaded and scaled pictures between the canvases of all
// frames. It is safe for concurrent use.
type Assets struct {
	src source.Source
	qr  image.Image
	log zerolog.Logger

	mu     sync.Mutex
	failed map[string]bool
	scaled map[scaledKey]*image.RGBA
}

// NewAssets prepares the asset cache. A non-empty qrURL adds a QR code of
// qrSize pixels to the end card.
func NewAssets(src source.Source, qrURL string, qrSize int) (*Assets, error) {
	a := &Assets{
		src:    src,
		log:    applog.WithComponent("renderer"),
		failed: make(map[string]bool),
		scaled: make(map[scaledKey]*image.RGBA),
	}
	if qrURL != "" {
		code, err := qrcode.New(qrURL, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("qr code: %w", err)
		}
		a.qr = code.Image(qrSize)
	}
	return a, nil
}

// QR returns the end card code or nil
func (a *Assets) QR() image.Image {
	return a.qr
}

// Image loads a picture. A failed load is logged once and reported as
// missing on every later call.
func (a *Assets) Image(path string) (image.Image, bool) {
	if path == "" {
		return nil, false
	}
	a.mu.Lock()
	failed := a.failed[path]
	a.mu.Unlock()
	if failed {
		return nil, false
	}

	img, err := a.src.Load(path)
	if err != nil {
		a.mu.Lock()
		if !a.failed[path] {
			a.failed[path] = true
			a.log.Warn().Err(err).Str("path", path).Msg("[!] изображение не загружено, рисуем заглушку")
		}
		a.mu.Unlock()
		return nil, false
	}
	return img, true
}

// Scaled returns the picture resized to size. Settled posters keep the same
// size for hundreds of frames, so keep=true stores the result.
func (a *Assets) Scaled(path string, size image.Point, keep bool) (*image.RGBA, bool) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, false
	}
	key := scaledKey{path: path, size: size}
	if keep {
		a.mu.Lock()
		img, ok := a.scaled[key]
		a.mu.Unlock()
		if ok {
			return img, true
		}
	}

	src, ok := a.Image(path)
	if !ok {
		return nil, false
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if keep {
		a.mu.Lock()
		a.scaled[key] = dst
		a.mu.Unlock()
	}
	return dst, true
}
