package timeline

import (
	"math"

	"github.com/ivlev/actor2video/internal/easing"
)

// Options are the percentage splits the schedule is built from
type Options struct {
	TitlePhasePercentage     float64 // share of the duration spent on title reveals, (0,1)
	ActorRevealDuration      float64 // seconds reserved for the final reveal
	PosterFullscreenFraction float64 // share of a poster phase held at full screen, [0,1)
	ActorStallFraction       float64 // share of the actor phase showing only the mystery box, [0,1)
}

// Schedule is an immutable ordered partition of [0,1] into phases
type Schedule struct {
	phases    []Phase
	itemCount int
	opts      Options
}

// Build splits the timeline of a video into title, poster and actor phases.
//
// Title reveals take the first TitlePhasePercentage of the duration, the
// actor reveal takes the last ActorRevealDuration seconds and the poster
// reveals share what is left. Times are normalized by totalDuration.
func Build(totalDuration float64, itemCount int, opts Options) (*Schedule, error) {
	if totalDuration <= 0 {
		return nil, configErr("duration", "must be positive, got %.3fs", totalDuration)
	}
	if itemCount < 0 {
		return nil, configErr("items", "negative item count %d", itemCount)
	}
	if opts.TitlePhasePercentage <= 0 || opts.TitlePhasePercentage >= 1 {
		return nil, configErr("title_phase_percentage", "must be in (0,1), got %.3f", opts.TitlePhasePercentage)
	}
	if opts.ActorRevealDuration <= 0 {
		return nil, configErr("actor_reveal_duration", "zero-length actor reveal (%.3fs)", opts.ActorRevealDuration)
	}
	if err := checkFractions(opts); err != nil {
		return nil, err
	}

	titlePhaseTime := totalDuration * opts.TitlePhasePercentage
	posterPhaseTime := totalDuration - titlePhaseTime - opts.ActorRevealDuration
	if posterPhaseTime < 0 {
		return nil, configErr("duration", "title phase %.3fs and actor reveal %.3fs exceed total %.3fs",
			titlePhaseTime, opts.ActorRevealDuration, totalDuration)
	}
	// Остаток вычитания вида 1 - 0.7 - 0.3 не равен нулю в точности
	if itemCount > 0 && posterPhaseTime/float64(itemCount) <= minPhaseWidth*totalDuration {
		return nil, configErr("duration", "no time left for %d poster phases", itemCount)
	}

	// Границы считаются один раз: конец фазы k в точности равен началу фазы k+1
	type bound struct {
		kind  Kind
		index int
		end   float64
	}
	bounds := make([]bound, 0, 2*itemCount+1)

	titleReveal := titlePhaseTime / float64(max(itemCount, 1))
	for i := 0; i < itemCount; i++ {
		end := float64(i+1) * titleReveal
		if i == itemCount-1 {
			end = titlePhaseTime
		}
		bounds = append(bounds, bound{TitleReveal, i, end})
	}

	posterReveal := posterPhaseTime / float64(max(itemCount, 1))
	actorStart := totalDuration - opts.ActorRevealDuration
	for i := 0; i < itemCount; i++ {
		end := titlePhaseTime + float64(i+1)*posterReveal
		if i == itemCount-1 {
			end = actorStart
		}
		bounds = append(bounds, bound{Poster, i, end})
	}
	bounds = append(bounds, bound{ActorReveal, NoIndex, totalDuration})

	phases := make([]Phase, len(bounds))
	start := 0.0
	if itemCount == 0 {
		start = actorStart / totalDuration
	}
	for i, b := range bounds {
		end := b.end / totalDuration
		if i == len(bounds)-1 {
			end = 1
		}
		phases[i] = Phase{Kind: b.kind, Start: start, End: end, Index: b.index, Seq: i}
		start = end
	}
	if err := checkWidths(phases); err != nil {
		return nil, err
	}

	return &Schedule{phases: phases, itemCount: itemCount, opts: opts}, nil
}

// FromPhases builds a schedule from phases laid out elsewhere, for example
// an edited storyboard. The phases must be in order, touch each other and
// end at 1; boundaries closer than minPhaseWidth are snapped together.
func FromPhases(phases []Phase, opts Options) (*Schedule, error) {
	if len(phases) == 0 {
		return nil, configErr("phases", "empty schedule")
	}
	if err := checkFractions(opts); err != nil {
		return nil, err
	}

	out := make([]Phase, len(phases))
	copy(out, phases)
	itemCount := 0
	for i := range out {
		p := &out[i]
		p.Seq = i
		if p.Kind == Poster {
			itemCount++
		}

		prevEnd := 0.0
		if i > 0 {
			prevEnd = out[i-1].End
		}
		switch {
		case math.Abs(p.Start-prevEnd) <= minPhaseWidth:
			p.Start = prevEnd
		case i == 0 && p.Start > 0 && p.Start < 1:
			// расписание без строк начинается сразу с актера
		default:
			return nil, configErr("phases", "%s does not start where the previous phase ends (%.6f)", p, prevEnd)
		}
	}

	last := &out[len(out)-1]
	if math.Abs(last.End-1) > minPhaseWidth {
		return nil, configErr("phases", "last phase %s must end at 1", last)
	}
	last.End = 1

	if err := checkWidths(out); err != nil {
		return nil, err
	}
	return &Schedule{phases: out, itemCount: itemCount, opts: opts}, nil
}

func checkFractions(opts Options) error {
	if opts.PosterFullscreenFraction < 0 || opts.PosterFullscreenFraction >= 1 {
		return configErr("poster_fullscreen_fraction", "must be in [0,1), got %.3f", opts.PosterFullscreenFraction)
	}
	if opts.ActorStallFraction < 0 || opts.ActorStallFraction >= 1 {
		return configErr("actor_stall_fraction", "must be in [0,1), got %.3f", opts.ActorStallFraction)
	}
	return nil
}

// minPhaseWidth is the narrowest phase accepted, in normalized time
const minPhaseWidth = 1e-9

func checkWidths(phases []Phase) error {
	for _, p := range phases {
		if p.Width() <= minPhaseWidth {
			return configErr("duration", "zero-length phase %s", p)
		}
	}
	return nil
}

// Len returns the number of phases
func (s *Schedule) Len() int {
	return len(s.phases)
}

// At returns the phase at position i
func (s *Schedule) At(i int) Phase {
	return s.phases[i]
}

// Phases returns a copy of all phases in schedule order
func (s *Schedule) Phases() []Phase {
	out := make([]Phase, len(s.phases))
	copy(out, s.phases)
	return out
}

// ItemCount is the number of revealed rows the schedule was built for
func (s *Schedule) ItemCount() int {
	return s.itemCount
}

// Options returns the options the schedule was built with
func (s *Schedule) Options() Options {
	return s.opts
}

// Find returns the phase of the given kind revealing item index
func (s *Schedule) Find(kind Kind, index int) (Phase, bool) {
	for _, p := range s.phases {
		if p.Kind == kind && p.Index == index {
			return p, true
		}
	}
	return Phase{}, false
}

// Resolve maps a global progress to the active phase and the local progress
// inside it. The first phase containing progress wins, so a progress value on
// a shared boundary belongs to the earlier phase.
func (s *Schedule) Resolve(progress float64) (Phase, float64) {
	progress = easing.Clamp01(progress)

	for _, p := range s.phases {
		if p.Contains(progress) {
			return p, local(p, progress)
		}
	}

	// Остаток округления: выбираем ближайшую фазу
	first := s.phases[0]
	if progress < first.Start {
		return first, 0
	}
	return s.phases[len(s.phases)-1], 1
}

func local(p Phase, progress float64) float64 {
	w := p.Width()
	if w <= 0 {
		return 1
	}
	return easing.Clamp01((progress - p.Start) / w)
}

// SecondsPhase is a phase expressed in seconds of a concrete video
type SecondsPhase struct {
	Phase
	StartSec float64
	EndSec   float64
}

// Seconds converts the normalized schedule back to seconds
func (s *Schedule) Seconds(totalDuration float64) []SecondsPhase {
	out := make([]SecondsPhase, len(s.phases))
	for i, p := range s.phases {
		out[i] = SecondsPhase{
			Phase:    p,
			StartSec: p.Start * totalDuration,
			EndSec:   p.End * totalDuration,
		}
	}
	return out
}
