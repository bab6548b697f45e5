package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/actor2video/internal/config"
	"github.com/ivlev/actor2video/internal/director"
	"github.com/ivlev/actor2video/internal/frame"
	applog "github.com/ivlev/actor2video/internal/log"
	"github.com/ivlev/actor2video/internal/movie"
	"github.com/ivlev/actor2video/internal/renderer"
	"github.com/ivlev/actor2video/internal/source"
	"github.com/ivlev/actor2video/internal/system"
	"github.com/ivlev/actor2video/internal/timeline"
	"github.com/ivlev/actor2video/internal/video"
)

const defaultBenchmarkLog = "benchmark.log"

type VideoProject struct {
	Config  *config.Config
	Actor   *movie.Actor
	Source  source.Source
	Encoder video.Encoder

	// BenchmarkLog is where the performance report is appended when ShowStats is set
	BenchmarkLog string

	log zerolog.Logger
}

func NewVideoProject(cfg *config.Config, actor *movie.Actor, src source.Source, enc video.Encoder) *VideoProject {
	return &VideoProject{
		Config:       cfg,
		Actor:        actor,
		Source:       src,
		Encoder:      enc,
		BenchmarkLog: defaultBenchmarkLog,
		log:          applog.WithComponent("engine"),
	}
}

// Prepare picks the movies, builds the schedule and the frame state builder
func (p *VideoProject) Prepare() (*frame.Builder, error) {
	descriptors := p.Config.Descriptors
	if len(descriptors) == 0 {
		descriptors = movie.DefaultDescriptors
	}
	pairs, err := movie.Pick(p.Actor, descriptors)
	if err != nil {
		return nil, fmt.Errorf("выбор фильмов: %w", err)
	}

	schedule, err := p.schedule(len(pairs))
	if err != nil {
		return nil, err
	}
	return frame.NewBuilder(schedule, frame.Rows(pairs), p.Config.FrameLayout())
}

// schedule строится по конфигурации или читается из раскадровки.
// Раскадровка задает и длительность видео.
func (p *VideoProject) schedule(items int) (*timeline.Schedule, error) {
	if p.Config.StoryboardInput == "" {
		return timeline.Build(p.Config.Duration, items, p.Config.TimelineOptions())
	}

	sb, err := director.ReadStoryboard(p.Config.StoryboardInput)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения раскадровки: %w", err)
	}
	schedule, err := sb.Schedule(p.Config.TimelineOptions())
	if err != nil {
		return nil, err
	}
	if schedule.ItemCount() != items {
		return nil, fmt.Errorf("раскадровка рассчитана на %d фильмов, выбрано %d", schedule.ItemCount(), items)
	}

	p.Config.Duration = sb.Duration
	p.log.Info().Float64("duration", sb.Duration).Msgf("[*] Используется раскадровка: %s", p.Config.StoryboardInput)
	return schedule, nil
}

// Progress maps a frame number to normalized time: frame i of N is shown at i/N
func Progress(frameIndex, totalFrames int) float64 {
	if totalFrames <= 0 {
		return 0
	}
	return float64(frameIndex) / float64(totalFrames)
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()

	builder, err := p.Prepare()
	if err != nil {
		return err
	}

	if p.Config.StoryboardOutput != "" {
		return p.writeStoryboard(builder)
	}

	assets, err := renderer.NewAssets(p.Source, p.Config.QRCodeURL, p.Config.Width/4)
	if err != nil {
		return err
	}

	totalFrames := p.Config.TotalFrames()
	if totalFrames <= 0 {
		return fmt.Errorf("нет кадров для рендеринга: %.2fs @ %d FPS", p.Config.Duration, p.Config.FPS)
	}

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	frameBytes := uint64(p.Config.Width) * uint64(p.Config.Height) * 4
	snapshot := system.TakeSnapshot()
	batch := snapshot.FrameBatch(workers, frameBytes)

	p.log.Info().Msg("--- [PROJECT: ACTOR REVEAL] ---")
	p.log.Info().
		Str("actor", p.Actor.Name).
		Int("rows", len(builder.Rows())-1).
		Int("frames", totalFrames).
		Msgf("[*] Разрешение: %dx%d @ %d FPS | Потоков: %d | Пакет: %d кадров",
			p.Config.Width, p.Config.Height, p.Config.FPS, workers, batch)

	sink, err := p.Encoder.Open(ctx, p.Config.OutputVideo, p.Config.EncodeParams())
	if err != nil {
		return fmt.Errorf("ошибка запуска энкодера: %w", err)
	}

	pool := system.NewImagePool()
	bounds := image.Rect(0, 0, p.Config.Width, p.Config.Height)
	var renderTime, encodeTime time.Duration

	for first := 0; first < totalFrames; first += batch {
		n := min(batch, totalFrames-first)
		frames := make([]*image.RGBA, n)

		renderStart := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			idx := first + i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img := pool.Get(bounds)
				canvas := renderer.NewCanvas(img, assets, builder.Layout())
				renderer.Compose(canvas, builder, builder.Build(Progress(idx, totalFrames)), p.Actor)
				frames[i] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			sink.Close()
			return fmt.Errorf("рендеринг кадров %d-%d: %w", first, first+n-1, err)
		}
		renderTime += time.Since(renderStart)

		encodeStart := time.Now()
		for i, img := range frames {
			if err := sink.WriteFrame(img); err != nil {
				sink.Close()
				return fmt.Errorf("кадр %d: %w", first+i, err)
			}
			pool.Put(img)
		}
		encodeTime += time.Since(encodeStart)

		p.log.Debug().Msgf("[>] Ready: %d/%d", first+n, totalFrames)
	}

	encodeStart := time.Now()
	if err := sink.Close(); err != nil {
		return fmt.Errorf("ошибка сборки видео: %w", err)
	}
	encodeTime += time.Since(encodeStart)

	if p.Config.ShowStats {
		p.report(totalFrames, time.Since(startTime), renderTime, encodeTime, snapshot)
	}
	return nil
}

func (p *VideoProject) writeStoryboard(builder *frame.Builder) error {
	p.log.Info().Msg("[*] Режим раскадровки...")

	sb := director.NewDirector(builder).Storyboard(p.Actor.Name, p.Config.Duration, p.Config.FPS)
	if err := director.WriteStoryboard(sb, p.Config.StoryboardOutput); err != nil {
		return fmt.Errorf("ошибка записи раскадровки: %w", err)
	}

	p.log.Info().Str("path", p.Config.StoryboardOutput).Int("shots", len(sb.Shots)).Msg("[+++] Раскадровка сохранена")
	return nil
}

func (p *VideoProject) report(frames int, total, render, encode time.Duration, snap system.Snapshot) {
	fps := float64(frames) / total.Seconds()

	p.log.Info().Msgf("--- [PERFORMANCE REPORT] ---\n"+
		"Build: %s\n"+
		"Total Time: %.2fs\n"+
		"Rendering (CPU): %.2fs\n"+
		"Encoding: %.2fs\n"+
		"Effective FPS: %.2f\n"+
		"CPUs: %d | Memory used: %.1f%%\n"+
		"----------------------------",
		p.Config.BuildVersion, total.Seconds(), render.Seconds(), encode.Seconds(), fps,
		snap.LogicalCPUs, snap.UsedPercent)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Actor: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		frames,
		total.Seconds(),
		render.Seconds(),
		encode.Seconds(),
		fps,
	)

	f, err := os.OpenFile(p.BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		p.log.Warn().Err(err).Msgf("[!] Не удалось записать %s", p.BenchmarkLog)
		return
	}
	defer f.Close()
	f.WriteString(logEntry)
}
