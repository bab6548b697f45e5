package frame

import (
	"fmt"

	"github.com/ivlev/actor2video/internal/motion"
	"github.com/ivlev/actor2video/internal/movie"
	"github.com/ivlev/actor2video/internal/timeline"
)

// MysterySlot is the slot index of the mystery actor row
const MysterySlot = -1

// Row is one revealed entry. A nil Item marks the mystery actor row.
type Row struct {
	Item       *movie.Movie
	Descriptor string
	SlotIndex  int
}

// Mystery reports whether the row is the mystery actor placeholder
func (r Row) Mystery() bool {
	return r.Item == nil || r.SlotIndex < 0
}

// Rows builds the row list: the mystery row followed by the pairs in the order given
func Rows(pairs []movie.Pair) []Row {
	rows := make([]Row, 0, len(pairs)+1)
	rows = append(rows, Row{Descriptor: movie.MysteryActor, SlotIndex: MysterySlot})
	for i, p := range pairs {
		rows = append(rows, Row{Item: p.Movie, Descriptor: p.Descriptor, SlotIndex: i})
	}
	return rows
}

// RowState is the visibility of one row in a frame
type RowState struct {
	Slot              int
	DescriptorVisible bool
	PosterVisible     bool
	PosterSettled     bool
	PosterRect        motion.Rect // target slot rectangle, or the live one while animating
}

// ActivePoster is the poster animating in the current frame
type ActivePoster struct {
	Slot       int
	Rect       motion.Rect
	Fullscreen bool // still in the full screen hold
}

// ActorState describes the final reveal
type ActorState struct {
	Active  bool
	Stalled bool
	Blend   float64
	Rect    motion.Rect
}

// FrameState is the declarative content of one frame
type FrameState struct {
	Progress     float64
	Phase        timeline.Phase
	Local        float64
	Rows         []RowState
	ActivePoster *ActivePoster
	Actor        ActorState
	Clues        int
}

// Builder turns progress values into frame states. It holds no mutable
// state, so Build can be called from many goroutines at once.
type Builder struct {
	schedule *timeline.Schedule
	rows     []Row
	layout   Layout

	// schedule positions of the phases revealing each slot
	titleSeq  map[int]int
	posterSeq map[int]int
}

// NewBuilder checks that every item row has title and poster phases in the schedule
func NewBuilder(schedule *timeline.Schedule, rows []Row, layout Layout) (*Builder, error) {
	b := &Builder{
		schedule:  schedule,
		rows:      rows,
		layout:    layout,
		titleSeq:  make(map[int]int),
		posterSeq: make(map[int]int),
	}

	seen := make(map[int]bool)
	for _, r := range rows {
		if r.Mystery() {
			continue
		}
		if seen[r.SlotIndex] {
			return nil, fmt.Errorf("duplicate row slot %d", r.SlotIndex)
		}
		seen[r.SlotIndex] = true

		title, ok := schedule.Find(timeline.TitleReveal, r.SlotIndex)
		if !ok {
			return nil, fmt.Errorf("row %d (%s) has no title phase", r.SlotIndex, r.Descriptor)
		}
		poster, ok := schedule.Find(timeline.Poster, r.SlotIndex)
		if !ok {
			return nil, fmt.Errorf("row %d (%s) has no poster phase", r.SlotIndex, r.Descriptor)
		}
		b.titleSeq[r.SlotIndex] = title.Seq
		b.posterSeq[r.SlotIndex] = poster.Seq
	}

	return b, nil
}

// Rows returns the rows the builder was created with
func (b *Builder) Rows() []Row {
	return b.rows
}

// Schedule returns the schedule the builder resolves against
func (b *Builder) Schedule() *timeline.Schedule {
	return b.schedule
}

// Layout returns the frame geometry
func (b *Builder) Layout() Layout {
	return b.layout
}

// Build computes the state of the frame at progress
func (b *Builder) Build(progress float64) FrameState {
	phase, local := b.schedule.Resolve(progress)

	fs := FrameState{
		Progress: progress,
		Phase:    phase,
		Local:    local,
		Rows:     make([]RowState, len(b.rows)),
		Clues:    b.clues(phase),
	}

	opts := b.schedule.Options()
	for i, r := range b.rows {
		rs := RowState{Slot: r.SlotIndex}
		if r.Mystery() {
			fs.Rows[i] = rs
			continue
		}

		target := b.layout.SlotRect(r.SlotIndex)
		rs.PosterRect = target
		rs.DescriptorVisible = phase.Seq >= b.titleSeq[r.SlotIndex]

		posterSeq := b.posterSeq[r.SlotIndex]
		switch {
		case phase.Seq == posterSeq:
			rect := motion.Poster(local, target.X, target.Y, target.W, target.H,
				b.layout.FrameWidth, b.layout.FrameHeight, opts.PosterFullscreenFraction)
			rs.PosterVisible = true
			rs.PosterRect = rect
			fs.ActivePoster = &ActivePoster{
				Slot:       r.SlotIndex,
				Rect:       rect,
				Fullscreen: local < opts.PosterFullscreenFraction,
			}
		case phase.Seq > posterSeq:
			rs.PosterVisible = true
			rs.PosterSettled = true
		}

		fs.Rows[i] = rs
	}

	if phase.Kind == timeline.ActorReveal {
		rev := motion.ActorReveal(local, opts.ActorStallFraction)
		fs.Actor = ActorState{
			Active:  true,
			Stalled: rev.Stalled,
			Blend:   rev.Blend,
			Rect:    motion.ActorRect(rev.Blend, b.layout.ActorStartSize, b.layout.FrameWidth, b.layout.FrameHeight),
		}
	}

	return fs
}

// clues counts the clue phases up to and including the active one: one per
// title, one per poster and one for the actor
func (b *Builder) clues(active timeline.Phase) int {
	n := 0
	for i := 0; i <= active.Seq && i < b.schedule.Len(); i++ {
		switch b.schedule.At(i).Kind {
		case timeline.TitleReveal, timeline.Poster, timeline.ActorReveal:
			n++
		}
	}
	return n
}

// Level returns the quiz band for a number of clues
func Level(clues int) string {
	for _, l := range movie.Levels {
		if clues >= l.Min && clues <= l.Max {
			return l.Label
		}
	}
	if clues > 0 {
		return movie.Levels[len(movie.Levels)-1].Label
	}
	return ""
}
