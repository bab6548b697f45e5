package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"
)

// ImageSource декодирует png, jpeg и webp с диска
type ImageSource struct{}

func (s *ImageSource) Load(ref string) (image.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("пустой путь к изображению")
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return img, nil
}

// Dimensions возвращает размер изображения без полного декодирования
func Dimensions(ref string) (int, int, error) {
	f, err := os.Open(ref)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
