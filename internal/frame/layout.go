package frame

import "github.com/ivlev/actor2video/internal/motion"

// Layout holds the geometry the frame state needs: where each row's poster
// settles and how large the actor starts.
type Layout struct {
	FrameWidth      int
	FrameHeight     int
	PosterWidth     int
	RowHeight       int
	StartY          int
	VerticalSpacing int
	ActorStartSize  int
}

// DefaultLayout reproduces the 1080x1920 grid: the mystery row at the top and
// five movie rows below it
func DefaultLayout(width, height int) Layout {
	return Layout{
		FrameWidth:      width,
		FrameHeight:     height,
		PosterWidth:     180,
		RowHeight:       320,
		StartY:          50,
		VerticalSpacing: (height - 100) / 6,
		ActorStartSize:  400,
	}
}

// RowY returns the top of the row in slot. The mystery row uses slot -1.
func (l Layout) RowY(slot int) int {
	return l.StartY + (slot+1)*l.VerticalSpacing
}

// SlotRect is where the poster of a row settles
func (l Layout) SlotRect(slot int) motion.Rect {
	return motion.Rect{X: 0, Y: l.RowY(slot), W: l.PosterWidth, H: l.RowHeight}
}
