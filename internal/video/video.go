package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"

	"github.com/ivlev/actor2video/internal/config"
)

// Sink принимает кадры строго по порядку
type Sink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

type Encoder interface {
	Open(ctx context.Context, videoPath string, params config.EncodeParams) (Sink, error)
}

type FFmpegEncoder struct{}

// Open запускает ffmpeg, который читает raw RGBA кадры из stdin
func (e *FFmpegEncoder) Open(ctx context.Context, videoPath string, params config.EncodeParams) (Sink, error) {
	args := e.buildFFmpegArgs(videoPath, params)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	out := &bytes.Buffer{}
	cmd.Stdout = out
	cmd.Stderr = out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return &ffmpegSink{
		cmd:    cmd,
		stdin:  stdin,
		out:    out,
		width:  params.Width,
		height: params.Height,
	}, nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(videoPath string, params config.EncodeParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}

	if params.AudioPath != "" {
		args = append(args, "-i", params.AudioPath, "-map", "0:v", "-map", "1:a", "-c:a", "aac", "-shortest")
	}

	args = append(args,
		"-t", fmt.Sprintf("%f", params.Duration),
		"-pix_fmt", "yuv420p",
		"-c:v", params.Encoder,
		"-movflags", "+faststart",
	)

	// Качество в зависимости от энкодера
	switch params.Encoder {
	case "h264_videotoolbox":
		bitrate := params.Quality * 100 // кбит/с. 75 -> 7.5Мбит/с
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	args = append(args, videoPath)
	return args
}

type ffmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bytes.Buffer
	width  int
	height int
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if img.Rect.Dx() != s.width || img.Rect.Dy() != s.height {
		return fmt.Errorf("кадр %dx%d не совпадает с размером видео %dx%d",
			img.Rect.Dx(), img.Rect.Dy(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.out.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// Проверяем, является ли изображение уже RGBA и имеет ли стандартный шаг (stride)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
