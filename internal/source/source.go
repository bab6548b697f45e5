package source

import (
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Source загружает постеры и портреты по ссылке из фильмографии
type Source interface {
	Load(ref string) (image.Image, error)
}

// FitzSource рендерит первую страницу PDF (пресс-кит, постер в PDF)
type FitzSource struct {
	DPI int
}

func (f *FitzSource) Load(ref string) (image.Image, error) {
	doc, err := fitz.New(ref)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(0, float64(f.DPI))
}

// MultiSource выбирает загрузчик по расширению и кэширует результат:
// один и тот же постер рисуется в сотнях кадров
type MultiSource struct {
	pdf    Source
	images Source

	mu    sync.Mutex
	cache map[string]image.Image
}

func NewSource(dpi int) *MultiSource {
	return &MultiSource{
		pdf:    &FitzSource{DPI: dpi},
		images: &ImageSource{},
		cache:  make(map[string]image.Image),
	}
}

func (m *MultiSource) Load(ref string) (image.Image, error) {
	m.mu.Lock()
	img, ok := m.cache[ref]
	m.mu.Unlock()
	if ok {
		return img, nil
	}

	var err error
	if strings.EqualFold(filepath.Ext(ref), ".pdf") {
		img, err = m.pdf.Load(ref)
	} else {
		img, err = m.images.Load(ref)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[ref] = img
	m.mu.Unlock()
	return img, nil
}
