package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/actor2video/internal/config"
	"github.com/ivlev/actor2video/internal/director"
	"github.com/ivlev/actor2video/internal/engine"
	applog "github.com/ivlev/actor2video/internal/log"
	"github.com/ivlev/actor2video/internal/movie"
	"github.com/ivlev/actor2video/internal/source"
	"github.com/ivlev/actor2video/internal/system"
	"github.com/ivlev/actor2video/internal/video"
)

var version = "dev"

const (
	actorsDir = "input/actors"
	audioDir  = "input/audio"
	outputDir = "output"
)

func main() {
	cfg := config.Default()
	cfg.Workers = runtime.NumCPU()
	cfg.BuildVersion = version

	// -config читается до остальных флагов: флаги перекрывают файл
	configPath := lookupFlag(os.Args[1:], "config")
	if configPath != "" {
		if err := config.LoadFile(configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "[-] Ошибка конфигурации: %v\n", err)
			os.Exit(1)
		}
	}

	flag.String("config", "", "YAML-файл с настройками (флаги имеют приоритет)")
	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "YAML фильмографии актера (по умолчанию: самый свежий файл в input/actors/)")
	actorPtr := flag.String("actor", "", "Имя актера: читается input/actors/<имя>.yaml")
	flag.StringVar(&cfg.OutputVideo, "output", cfg.OutputVideo, "Путь к видео (если пусто, генерируется автоматически в output/)")
	flag.StringVar(&cfg.StoryboardOutput, "storyboard", cfg.StoryboardOutput, "Записать раскадровку в YAML вместо видео (auto - в output/)")
	flag.StringVar(&cfg.StoryboardInput, "storyboard-in", cfg.StoryboardInput, "Рендерить по тайм-кодам из раскадровки (например, отредактированной)")
	descriptorsPtr := flag.String("descriptors", strings.Join(cfg.Descriptors, ","), "Порядок категорий через запятую")
	flag.Float64Var(&cfg.Duration, "duration", cfg.Duration, "Общая длительность видео (сек)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Ширина")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Высота")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "FPS")
	presetPtr := flag.String("preset", cfg.Preset, "Пресет формата: 9:16 (Shorts/TikTok), 16:9, 4:5 (Instagram)")
	flag.Float64Var(&cfg.TitlePhasePercentage, "title-share", cfg.TitlePhasePercentage, "Доля видео под показ категорий и названий")
	flag.Float64Var(&cfg.ActorRevealDuration, "actor-reveal", cfg.ActorRevealDuration, "Длительность появления актера (сек)")
	flag.Float64Var(&cfg.PosterFullscreenFraction, "poster-hold", cfg.PosterFullscreenFraction, "Доля фазы постера на весь экран")
	flag.Float64Var(&cfg.ActorStallFraction, "actor-stall", cfg.ActorStallFraction, "Доля фазы актера, когда виден только знак вопроса")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Потоки")
	flag.IntVar(&cfg.DPI, "dpi", cfg.DPI, "DPI для постеров в PDF")
	flag.StringVar(&cfg.AudioPath, "audio", cfg.AudioPath, "Путь к аудио (по умолчанию: самый свежий файл в input/audio/)")
	audioSyncPtr := flag.Bool("audio-sync", false, "Синхронизировать длительность видео с аудио")
	flag.StringVar(&cfg.VideoEncoder, "encoder", cfg.VideoEncoder, "Энкодер H.264 (auto - выбрать аппаратный, если есть)")
	flag.IntVar(&cfg.Quality, "quality", cfg.Quality, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	flag.StringVar(&cfg.QRCodeURL, "qr", cfg.QRCodeURL, "Ссылка для QR-кода на финальном кадре")
	flag.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "Отчет о производительности и запись в benchmark.log")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Уровень логов: debug, info, warn, error")

	flag.Parse()

	applog.Configure(applog.Config{Level: cfg.LogLevel, Version: cfg.BuildVersion})
	logger := applog.WithComponent("main")

	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	for _, d := range []string{actorsDir, audioDir, outputDir} {
		os.MkdirAll(d, 0755)
	}

	if *descriptorsPtr != "" {
		cfg.Descriptors = splitList(*descriptorsPtr)
	}
	if err := cfg.ApplyPreset(*presetPtr); err != nil {
		logger.Fatal().Err(err).Msg("[-] Ошибка пресета")
	}

	actor, err := loadActor(cfg, *actorPtr)
	if err != nil {
		logger.Fatal().Err(err).Msg("[-] Ошибка загрузки фильмографии. Положите YAML в input/actors/")
	}
	logger.Info().Str("actor", actor.Name).Int("movies", len(actor.Movies)).Msgf("[*] Выбран файл: %s", cfg.InputPath)

	// Обработка аудио
	if cfg.AudioPath == "" {
		if latest, err := system.FindLatest(audioDir, system.AudioExtensions); err == nil {
			cfg.AudioPath = latest
			logger.Info().Msgf("[*] Выбрано аудио: %s", cfg.AudioPath)
		}
	}
	if cfg.AudioPath != "" && *audioSyncPtr {
		audioDur, err := system.GetAudioDuration(cfg.AudioPath)
		if err == nil {
			cfg.Duration = audioDur
			logger.Info().Msgf("[*] Длительность видео установлена по аудио: %.2fs", cfg.Duration)
		} else {
			logger.Warn().Err(err).Msg("[!] Не удалось получить длительность аудио")
		}
	}

	if cfg.VideoEncoder == "" || cfg.VideoEncoder == "auto" {
		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			logger.Info().Msgf("[*] Обнаружено аппаратное ускорение: %s", cfg.VideoEncoder)
		}
	}
	if cfg.Quality == 0 {
		cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
	}

	if cfg.OutputVideo == "" {
		cleanName := strings.ReplaceAll(actor.Name, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join(outputDir, fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}
	if cfg.StoryboardOutput == "auto" {
		cfg.StoryboardOutput = director.StoryboardPath(outputDir, actor.Name)
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("[-] Некорректные параметры")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewVideoProject(cfg, actor, source.NewSource(cfg.DPI), &video.FFmpegEncoder{})
	if err := project.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("[-] Ошибка проекта")
	}

	if cfg.StoryboardOutput == "" {
		logger.Info().Msgf("[+++] Успех! Результат: %s", cfg.OutputVideo)
	}
}

// loadActor читает фильмографию по имени актера, по пути или берет
// самый свежий файл в input/actors
func loadActor(cfg *config.Config, name string) (*movie.Actor, error) {
	if name != "" {
		var films movie.Filmography = &movie.FileFilmography{Dir: actorsDir}
		cfg.InputPath = filepath.Join(actorsDir, name+".yaml")
		return films.Actor(name)
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatest(actorsDir, system.ActorExtensions)
		if err != nil {
			return nil, err
		}
		cfg.InputPath = latest
	}
	return movie.LoadActor(cfg.InputPath)
}

// lookupFlag находит значение флага до разбора остальных флагов
func lookupFlag(args []string, name string) string {
	for i, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			continue
		}
		if value, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return value
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
