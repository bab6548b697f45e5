package director

import (
	"fmt"
	"math"

	"github.com/ivlev/actor2video/internal/frame"
	"github.com/ivlev/actor2video/internal/motion"
	"github.com/ivlev/actor2video/internal/timeline"
)

const storyboardVersion = "1.0"

// NewStoryboard converts a schedule into shots with second and frame bounds
func NewStoryboard(s *timeline.Schedule, duration float64, fps int) *Storyboard {
	sb := &Storyboard{
		Version:  storyboardVersion,
		Duration: duration,
		FPS:      fps,
		Frames:   int(duration * float64(fps)),
	}
	for _, p := range s.Seconds(duration) {
		sb.Shots = append(sb.Shots, Shot{
			ID:         p.Seq + 1,
			Kind:       string(p.Kind),
			Index:      p.Index,
			Start:      p.StartSec,
			End:        p.EndSec,
			StartFrame: frameAt(p.StartSec, fps),
			EndFrame:   frameAt(p.EndSec, fps),
		})
	}
	return sb
}

// Schedule turns the shots back into a normalized schedule. Shot times are
// divided by the storyboard duration, so an edited storyboard can retime
// the reveal without touching the configuration.
func (sb *Storyboard) Schedule(opts timeline.Options) (*timeline.Schedule, error) {
	if sb.Duration <= 0 {
		return nil, fmt.Errorf("раскадровка: некорректная длительность %.3fs", sb.Duration)
	}
	phases := make([]timeline.Phase, len(sb.Shots))
	for i, shot := range sb.Shots {
		phases[i] = timeline.Phase{
			Kind:  timeline.Kind(shot.Kind),
			Start: shot.Start / sb.Duration,
			End:   shot.End / sb.Duration,
			Index: shot.Index,
		}
	}
	return timeline.FromPhases(phases, opts)
}

// Director annotates a storyboard with row labels and the key rectangles of
// the poster and actor animations
type Director struct {
	builder *frame.Builder
}

func NewDirector(b *frame.Builder) *Director {
	return &Director{builder: b}
}

// Storyboard builds the annotated storyboard of the whole video
func (d *Director) Storyboard(actor string, duration float64, fps int) *Storyboard {
	schedule := d.builder.Schedule()
	sb := NewStoryboard(schedule, duration, fps)
	sb.Actor = actor

	labels := make(map[int]string)
	for _, r := range d.builder.Rows() {
		if r.Mystery() {
			continue
		}
		labels[r.SlotIndex] = fmt.Sprintf("%s: %s", r.Descriptor, r.Item.Title)
	}

	opts := schedule.Options()
	for i := range sb.Shots {
		shot := &sb.Shots[i]
		phase := schedule.At(i)
		switch phase.Kind {
		case timeline.TitleReveal:
			shot.Label = labels[phase.Index]
		case timeline.Poster:
			shot.Label = labels[phase.Index]
			shot.Keyframes = d.keyframes(phase, duration, opts.PosterFullscreenFraction, "fullscreen", fmt.Sprintf("slot_%d", phase.Index))
		case timeline.ActorReveal:
			shot.Keyframes = d.keyframes(phase, duration, opts.ActorStallFraction, "mystery_box", "portrait")
		}
	}
	return sb
}

// keyframes samples the phase at its start, at the end of the hold and at
// its end. Phase bounds are shared with the neighbours, so the rectangles are
// taken from the interpolators directly instead of resolving progress.
func (d *Director) keyframes(phase timeline.Phase, duration, hold float64, first, last string) []Keyframe {
	layout := d.builder.Layout()
	points := []struct {
		local float64
		focus string
	}{
		{0, first},
		{hold, "hold_end"},
		{1, last},
	}

	kfs := make([]Keyframe, 0, len(points))
	for _, pt := range points {
		var rect motion.Rect
		if phase.Kind == timeline.ActorReveal {
			rev := motion.ActorReveal(pt.local, hold)
			rect = motion.ActorRect(rev.Blend, layout.ActorStartSize, layout.FrameWidth, layout.FrameHeight)
		} else {
			target := layout.SlotRect(phase.Index)
			rect = motion.Poster(pt.local, target.X, target.Y, target.W, target.H,
				layout.FrameWidth, layout.FrameHeight, hold)
		}
		kfs = append(kfs, Keyframe{
			Time:  (phase.Start + pt.local*phase.Width()) * duration,
			Focus: pt.focus,
			Rect:  rect,
		})
	}
	return kfs
}

func frameAt(sec float64, fps int) int {
	return int(math.Round(sec * float64(fps)))
}
