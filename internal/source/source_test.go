package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestMultiSourceCaches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poster.png")
	writePNG(t, path, 18, 32)

	src := NewSource(72)
	img, err := src.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 18, img.Bounds().Dx())

	// После удаления файла постер берется из кэша
	require.NoError(t, os.Remove(path))
	again, err := src.Load(path)
	require.NoError(t, err)
	assert.Same(t, img, again)
}

func TestImageSourceErrors(t *testing.T) {
	src := &ImageSource{}

	_, err := src.Load("")
	assert.Error(t, err)

	_, err = src.Load(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = src.Load(bad)
	assert.Error(t, err)
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portrait.png")
	writePNG(t, path, 40, 60)

	w, h, err := Dimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 60, h)
}
