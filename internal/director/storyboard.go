package director

import "github.com/ivlev/actor2video/internal/motion"

// Storyboard is the timeline of one video written out in seconds and frames
type Storyboard struct {
	Version  string  `yaml:"version"`
	Actor    string  `yaml:"actor,omitempty"`
	Duration float64 `yaml:"duration"` // seconds
	FPS      int     `yaml:"fps"`
	Frames   int     `yaml:"frames"`
	Shots    []Shot  `yaml:"shots"`
}

// Shot is one phase of the timeline
type Shot struct {
	ID         int        `yaml:"id"`
	Kind       string     `yaml:"kind"`
	Index      int        `yaml:"index"`           // row ordinal, -1 for the actor reveal
	Label      string     `yaml:"label,omitempty"` // descriptor and movie title
	Start      float64    `yaml:"start"`
	End        float64    `yaml:"end"`
	StartFrame int        `yaml:"start_frame"`
	EndFrame   int        `yaml:"end_frame"`
	Keyframes  []Keyframe `yaml:"keyframes,omitempty"`
}

// Keyframe is the rectangle of the moving picture at a moment of the shot
type Keyframe struct {
	Time  float64     `yaml:"time"`  // seconds from the start of the video
	Focus string      `yaml:"focus"` // what the moment is
	Rect  motion.Rect `yaml:"rect"`
}
