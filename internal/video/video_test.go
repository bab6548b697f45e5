package video

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/actor2video/internal/config"
)

func TestBuildFFmpegArgs(t *testing.T) {
	e := &FFmpegEncoder{}
	params := config.EncodeParams{Width: 1080, Height: 1920, FPS: 30, Duration: 20, Encoder: "libx264", Quality: 23}

	args := strings.Join(e.buildFFmpegArgs("out.mp4", params), " ")
	assert.Contains(t, args, "-video_size 1080x1920")
	assert.Contains(t, args, "-framerate 30")
	assert.Contains(t, args, "-crf 23 -preset medium")
	assert.NotContains(t, args, "-shortest")
	assert.True(t, strings.HasSuffix(args, "out.mp4"))

	params.Encoder = "h264_videotoolbox"
	params.Quality = 75
	params.AudioPath = "music.mp3"
	args = strings.Join(e.buildFFmpegArgs("out.mp4", params), " ")
	assert.Contains(t, args, "-b:v 7500k")
	assert.Contains(t, args, "-i music.mp3")
	assert.Contains(t, args, "-shortest")

	params.Encoder = "h264_nvenc"
	params.Quality = 28
	args = strings.Join(e.buildFFmpegArgs("out.mp4", params), " ")
	assert.Contains(t, args, "-cq 28")
}

func TestWriteRawRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	var buf bytes.Buffer
	require.NoError(t, writeRawRGBA(&buf, img))
	assert.Equal(t, 16, buf.Len())
	assert.Equal(t, []byte{1, 2, 3, 255}, buf.Bytes()[12:16])

	// Подизображение со смещением копируется в плотный буфер
	sub := img.SubImage(image.Rect(1, 1, 2, 2))
	buf.Reset()
	require.NoError(t, writeRawRGBA(&buf, sub))
	assert.Equal(t, []byte{1, 2, 3, 255}, buf.Bytes())
}
