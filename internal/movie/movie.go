package movie

import (
	"fmt"
	"strconv"
	"strings"
)

// Movie is one filmography entry as returned by the critic site
type Movie struct {
	Title        string `yaml:"title"`
	Year         string `yaml:"year"`
	BoxOffice    string `yaml:"box_office"`
	PosterPath   string `yaml:"poster"`
	Tomatometer  string `yaml:"tomatometer"`
	Popcornmeter string `yaml:"popcornmeter"`
	Credit       string `yaml:"credit,omitempty"`
}

// DisplayTomatometer returns the critics score with a percent sign
func (m *Movie) DisplayTomatometer() string {
	return withPercent(m.Tomatometer)
}

// DisplayPopcornmeter returns the audience score with a percent sign
func (m *Movie) DisplayPopcornmeter() string {
	return withPercent(m.Popcornmeter)
}

// DisplayBoxOffice returns the box office as scraped
func (m *Movie) DisplayBoxOffice() string {
	return m.BoxOffice
}

// DisplayYear returns the release year
func (m *Movie) DisplayYear() string {
	return m.Year
}

// TomatometerInt returns the critics score or -1 when there is none
func (m *Movie) TomatometerInt() int {
	return scoreInt(m.Tomatometer)
}

// PopcornmeterInt returns the audience score or -1 when there is none
func (m *Movie) PopcornmeterInt() int {
	return scoreInt(m.Popcornmeter)
}

// BoxOfficeValue returns the box office in dollars, 0 when unknown
func (m *Movie) BoxOfficeValue() float64 {
	v, err := ParseBoxOffice(m.BoxOffice)
	if err != nil {
		return 0
	}
	return v
}

func withPercent(s string) string {
	if s == "" || strings.Contains(s, "%") {
		return s
	}
	return s + "%"
}

func scoreInt(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" || strings.Contains(s, "No") {
		return -1
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return v
}

// ParseBoxOffice converts strings like "$2.799B", "836.8M" or "120K" to dollars
func ParseBoxOffice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty box office")
	}

	mult := 1.0
	switch strings.ToUpper(s[len(s)-1:]) {
	case "B":
		mult = 1e9
	case "M":
		mult = 1e6
	case "K":
		mult = 1e3
	}
	if mult != 1 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid box office %q: %w", s, err)
	}
	return v * mult, nil
}
