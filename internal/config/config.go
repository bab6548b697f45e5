package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/actor2video/internal/frame"
	"github.com/ivlev/actor2video/internal/timeline"
)

type Config struct {
	InputPath        string   `yaml:"input"`
	OutputVideo      string   `yaml:"output"`
	StoryboardOutput string   `yaml:"storyboard"`
	StoryboardInput  string   `yaml:"storyboard_in"`
	Descriptors      []string `yaml:"descriptors"`

	Duration                 float64 `yaml:"duration"`
	Width                    int     `yaml:"width"`
	Height                   int     `yaml:"height"`
	FPS                      int     `yaml:"fps"`
	TitlePhasePercentage     float64 `yaml:"title_phase_percentage"`
	ActorRevealDuration      float64 `yaml:"actor_reveal_duration"`
	PosterFullscreenFraction float64 `yaml:"poster_fullscreen_fraction"`
	ActorStallFraction       float64 `yaml:"actor_stall_fraction"`

	PosterWidth    int `yaml:"poster_width"`
	RowHeight      int `yaml:"row_height"`
	ActorStartSize int `yaml:"actor_start_size"`

	Workers      int    `yaml:"workers"`
	DPI          int    `yaml:"dpi"`
	AudioPath    string `yaml:"audio"`
	Preset       string `yaml:"preset"`
	VideoEncoder string `yaml:"encoder"`
	Quality      int    `yaml:"quality"`
	QRCodeURL    string `yaml:"qr_url"`
	ShowStats    bool   `yaml:"stats"`
	LogLevel     string `yaml:"log_level"`
	BuildVersion string `yaml:"-"`
}

// Default возвращает конфигурацию вертикального шортса 1080x1920
func Default() *Config {
	return &Config{
		Duration:                 20,
		Width:                    1080,
		Height:                   1920,
		FPS:                      30,
		TitlePhasePercentage:     0.30,
		ActorRevealDuration:      1.0,
		PosterFullscreenFraction: 0.3,
		PosterWidth:              180,
		RowHeight:                320,
		ActorStartSize:           400,
		Workers:                  4,
		DPI:                      150,
		VideoEncoder:             "auto",
		LogLevel:                 "info",
	}
}

// LoadFile накладывает значения из YAML-файла поверх cfg
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	return nil
}

// ApplyPreset задает размеры кадра по имени формата
func (c *Config) ApplyPreset(preset string) error {
	switch preset {
	case "":
		return nil
	case "9:16":
		c.Width, c.Height = 1080, 1920
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("неизвестный пресет %q", preset)
	}
	c.Preset = preset
	return nil
}

// Validate проверяет параметры, не относящиеся к таймлайну.
// Таймлайн проверяется в timeline.Build.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("некорректное разрешение %dx%d", c.Width, c.Height)
	}
	// yuv420p требует четных размеров
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("разрешение %dx%d должно быть четным", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("некорректный FPS: %d", c.FPS)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("количество потоков должно быть положительным: %d", c.Workers)
	}
	if c.PosterWidth <= 0 || c.RowHeight <= 0 {
		return fmt.Errorf("некорректный размер постера %dx%d", c.PosterWidth, c.RowHeight)
	}
	return nil
}

// TotalFrames is the number of frames sampled for the video
func (c *Config) TotalFrames() int {
	return int(c.Duration * float64(c.FPS))
}

// TimelineOptions projects the config onto the schedule options
func (c *Config) TimelineOptions() timeline.Options {
	return timeline.Options{
		TitlePhasePercentage:     c.TitlePhasePercentage,
		ActorRevealDuration:      c.ActorRevealDuration,
		PosterFullscreenFraction: c.PosterFullscreenFraction,
		ActorStallFraction:       c.ActorStallFraction,
	}
}

// FrameLayout projects the config onto the frame geometry
func (c *Config) FrameLayout() frame.Layout {
	l := frame.DefaultLayout(c.Width, c.Height)
	l.PosterWidth = c.PosterWidth
	l.RowHeight = c.RowHeight
	if c.ActorStartSize > 0 {
		l.ActorStartSize = c.ActorStartSize
	}
	return l
}

type EncodeParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	Encoder       string
	Quality       int
	AudioPath     string
}

// EncodeParams returns the parameters of the video sink
func (c *Config) EncodeParams() EncodeParams {
	return EncodeParams{
		Width:     c.Width,
		Height:    c.Height,
		FPS:       c.FPS,
		Duration:  c.Duration,
		Encoder:   c.VideoEncoder,
		Quality:   c.Quality,
		AudioPath: c.AudioPath,
	}
}
