package renderer

import (
	"github.com/ivlev/actor2video/internal/frame"
	"github.com/ivlev/actor2video/internal/movie"
)

// endCardStart is the reveal blend after which the actor name and the
// score levels fade in
const endCardStart = 0.8

// Compose draws one frame state. The order is fixed: background, rows,
// counter, the animating poster on top, then the actor reveal.
func Compose(r Renderer, b *frame.Builder, fs frame.FrameState, actor *movie.Actor) {
	layout := b.Layout()
	rows := b.Rows()

	r.Clear()
	for i, row := range rows {
		slot := layout.SlotRect(row.SlotIndex).Image()
		if row.Mystery() {
			r.DrawMysteryPlaceholder(slot)
			continue
		}

		rs := fs.Rows[i]
		if rs.PosterSettled {
			r.DrawPoster(ImageContent{Path: row.Item.PosterPath}, slot)
		} else {
			r.DrawMysteryPlaceholder(slot)
		}
		if rs.DescriptorVisible {
			r.DrawRow(layout.RowY(row.SlotIndex), row.Descriptor, RowInfo(row.Item))
		}
	}

	r.DrawCounter(fs.Clues)

	if ap := fs.ActivePoster; ap != nil {
		for _, row := range rows {
			if !row.Mystery() && row.SlotIndex == ap.Slot {
				r.DrawPoster(ImageContent{Path: row.Item.PosterPath}, ap.Rect.Image())
				break
			}
		}
	}

	if !fs.Actor.Active {
		return
	}
	var portrait ImageContent
	name := movie.MysteryActor
	if actor != nil {
		portrait.Path = actor.Portrait
		name = actor.Name
	}
	r.DrawActor(portrait, fs.Actor.Rect.Image(), fs.Actor.Blend)
	if fs.Actor.Blend > endCardStart {
		alpha := (fs.Actor.Blend - endCardStart) * 5
		if alpha > 1 {
			alpha = 1
		}
		r.DrawEndCard(name, levelLabels(), alpha)
	}
}

// RowInfo lists what a revealed row shows next to its poster
func RowInfo(m *movie.Movie) []Content {
	title := m.Title
	if m.Year != "" {
		title += " (" + m.DisplayYear() + ")"
	}
	return []Content{
		TextContent{Text: title},
		ScoreContent{Value: m.TomatometerInt(), Label: scoreLabel(m.TomatometerInt(), m.DisplayTomatometer())},
		ScoreContent{Value: m.PopcornmeterInt(), Label: scoreLabel(m.PopcornmeterInt(), m.DisplayPopcornmeter())},
		TextContent{Text: m.DisplayBoxOffice(), Highlight: true},
	}
}

func scoreLabel(value int, display string) string {
	if value < 0 {
		return "--"
	}
	return display
}

func levelLabels() []string {
	labels := make([]string, len(movie.Levels))
	for i, l := range movie.Levels {
		labels[i] = l.Label
	}
	return labels
}
