package movie

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Actor is the mystery actor with the filmography used for clues
type Actor struct {
	Name     string  `yaml:"name"`
	Portrait string  `yaml:"portrait"`
	URL      string  `yaml:"url,omitempty"`
	Movies   []Movie `yaml:"movies"`
}

// WorstTomatometer returns the movie critics liked least
func (a *Actor) WorstTomatometer() *Movie {
	return a.pick(func(m *Movie) float64 { return float64(m.TomatometerInt()) }, false)
}

// WorstPopcornmeter returns the movie audiences liked least
func (a *Actor) WorstPopcornmeter() *Movie {
	return a.pick(func(m *Movie) float64 { return float64(m.PopcornmeterInt()) }, false)
}

// MostSuccessful returns the movie with the highest box office
func (a *Actor) MostSuccessful() *Movie {
	return a.pick(func(m *Movie) float64 { return m.BoxOfficeValue() }, true)
}

// BestPopcornmeter returns the movie audiences liked most
func (a *Actor) BestPopcornmeter() *Movie {
	return a.pick(func(m *Movie) float64 { return float64(m.PopcornmeterInt()) }, true)
}

// BestTomatometer returns the movie critics liked most
func (a *Actor) BestTomatometer() *Movie {
	return a.pick(func(m *Movie) float64 { return float64(m.TomatometerInt()) }, true)
}

// pick returns the first movie with the extreme positive value of key.
// Movies without a value (key <= 0) are skipped.
func (a *Actor) pick(key func(*Movie) float64, highest bool) *Movie {
	var best *Movie
	var bestVal float64
	for i := range a.Movies {
		m := &a.Movies[i]
		v := key(m)
		if v <= 0 {
			continue
		}
		if best == nil || (highest && v > bestVal) || (!highest && v < bestVal) {
			best, bestVal = m, v
		}
	}
	return best
}

// Filmography returns an actor with movies by name. The critic site scraper
// is one implementation; FileFilmography reads a prepared YAML file.
type Filmography interface {
	Actor(name string) (*Actor, error)
}

// FileFilmography looks actors up in YAML files named <dir>/<name>.yaml
type FileFilmography struct {
	Dir string
}

func (f *FileFilmography) Actor(name string) (*Actor, error) {
	return LoadActor(fmt.Sprintf("%s/%s.yaml", f.Dir, name))
}

// LoadActor reads an actor with the filmography from a YAML file
func LoadActor(path string) (*Actor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var actor Actor
	if err := yaml.Unmarshal(data, &actor); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if actor.Name == "" {
		return nil, fmt.Errorf("%s: actor name is empty", path)
	}
	return &actor, nil
}
