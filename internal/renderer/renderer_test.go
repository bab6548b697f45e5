package renderer

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"github.com/ivlev/actor2video/internal/frame"
	"github.com/ivlev/actor2video/internal/movie"
	"github.com/ivlev/actor2video/internal/timeline"
)

type fakeSource map[string]color.Color

func (f fakeSource) Load(ref string) (image.Image, error) {
	c, ok := f[ref]
	if !ok {
		return nil, fmt.Errorf("not found: %s", ref)
	}
	img := image.NewRGBA(image.Rect(0, 0, 90, 160))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img, nil
}

type call struct {
	method string
	arg    string
	rect   image.Rectangle
	value  float64
}

type recorder struct {
	calls []call
}

func (r *recorder) Clear() { r.calls = append(r.calls, call{method: "clear"}) }

func (r *recorder) DrawMysteryPlaceholder(rect image.Rectangle) {
	r.calls = append(r.calls, call{method: "placeholder", rect: rect})
}

func (r *recorder) DrawPoster(poster ImageContent, rect image.Rectangle) {
	r.calls = append(r.calls, call{method: "poster", arg: poster.Path, rect: rect})
}

func (r *recorder) DrawRow(y int, descriptor string, info []Content) {
	r.calls = append(r.calls, call{method: "row", arg: descriptor, value: float64(y)})
}

func (r *recorder) DrawActor(portrait ImageContent, rect image.Rectangle, blend float64) {
	r.calls = append(r.calls, call{method: "actor", arg: portrait.Path, rect: rect, value: blend})
}

func (r *recorder) DrawCounter(clues int) {
	r.calls = append(r.calls, call{method: "counter", value: float64(clues)})
}

func (r *recorder) DrawEndCard(name string, levels []string, alpha float64) {
	r.calls = append(r.calls, call{method: "endcard", arg: name, value: alpha})
}

func (r *recorder) named(method string) []call {
	var out []call
	for _, c := range r.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func testActor() *movie.Actor {
	a := &movie.Actor{Name: "Jane Doe", Portrait: "portrait.png"}
	for i := 0; i < 5; i++ {
		a.Movies = append(a.Movies, movie.Movie{
			Title:        fmt.Sprintf("Movie %d", i),
			Year:         "2001",
			BoxOffice:    "$10M",
			PosterPath:   fmt.Sprintf("poster-%d.png", i),
			Tomatometer:  fmt.Sprintf("%d%%", 40+i*10),
			Popcornmeter: "",
		})
	}
	return a
}

func testBuilder(t *testing.T, actor *movie.Actor) *frame.Builder {
	t.Helper()
	s, err := timeline.Build(20, 5, timeline.Options{
		TitlePhasePercentage:     0.30,
		ActorRevealDuration:      1,
		PosterFullscreenFraction: 0.3,
		ActorStallFraction:       0.1,
	})
	require.NoError(t, err)

	pairs := make([]movie.Pair, len(actor.Movies))
	for i := range actor.Movies {
		pairs[i] = movie.Pair{Movie: &actor.Movies[i], Descriptor: movie.DefaultDescriptors[i]}
	}
	b, err := frame.NewBuilder(s, frame.Rows(pairs), frame.DefaultLayout(1080, 1920))
	require.NoError(t, err)
	return b
}

func TestComposeTitlePhase(t *testing.T) {
	actor := testActor()
	b := testBuilder(t, actor)

	rec := &recorder{}
	Compose(rec, b, b.Build(0.07), actor)

	assert.Equal(t, "clear", rec.calls[0].method)
	rows := rec.named("row")
	require.Len(t, rows, 2)
	assert.Equal(t, movie.CriticsLeastFavorite, rows[0].arg)
	assert.Equal(t, movie.AudienceLeastFavorite, rows[1].arg)
	assert.Empty(t, rec.named("poster"))
	// mystery row plus five hidden posters
	assert.Len(t, rec.named("placeholder"), 6)
	assert.Equal(t, 2.0, rec.named("counter")[0].value)
	assert.Empty(t, rec.named("actor"))
}

func TestComposePosterPhase(t *testing.T) {
	actor := testActor()
	b := testBuilder(t, actor)

	rec := &recorder{}
	fs := b.Build(0.365)
	Compose(rec, b, fs, actor)

	require.NotNil(t, fs.ActivePoster)
	posters := rec.named("poster")
	require.Len(t, posters, 1)
	assert.Equal(t, "poster-0.png", posters[0].arg)
	assert.Equal(t, fs.ActivePoster.Rect.Image(), posters[0].rect)
	assert.Len(t, rec.named("row"), 5)

	// the animating poster is drawn after the counter
	last := rec.calls[len(rec.calls)-1]
	assert.Equal(t, "poster", last.method)
}

func TestComposeActorReveal(t *testing.T) {
	actor := testActor()
	b := testBuilder(t, actor)

	rec := &recorder{}
	Compose(rec, b, b.Build(0.97), actor)
	assert.Len(t, rec.named("poster"), 5)
	require.Len(t, rec.named("actor"), 1)
	assert.Equal(t, "portrait.png", rec.named("actor")[0].arg)
	assert.Empty(t, rec.named("endcard"))
	assert.Equal(t, 11.0, rec.named("counter")[0].value)

	rec = &recorder{}
	Compose(rec, b, b.Build(1), actor)
	cards := rec.named("endcard")
	require.Len(t, cards, 1)
	assert.Equal(t, "Jane Doe", cards[0].arg)
	assert.InDelta(t, 1.0, cards[0].value, 1e-9)
}

func TestRowInfo(t *testing.T) {
	m := &movie.Movie{Title: "Heat", Year: "1995", Tomatometer: "88%", BoxOffice: "$187.4M"}
	info := RowInfo(m)
	require.Len(t, info, 4)
	assert.Equal(t, TextContent{Text: "Heat (1995)"}, info[0])
	assert.Equal(t, ScoreContent{Value: 88, Label: "88%"}, info[1])
	assert.Equal(t, ScoreContent{Value: -1, Label: "--"}, info[2])
	assert.Equal(t, TextContent{Text: "$187.4M", Highlight: true}, info[3])
}

func assertColor(t *testing.T, want color.RGBA, got color.Color) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	assert.InDelta(t, float64(want.R), float64(r>>8), 2)
	assert.InDelta(t, float64(want.G), float64(g>>8), 2)
	assert.InDelta(t, float64(want.B), float64(b>>8), 2)
}

func TestCanvasDrawsFrame(t *testing.T) {
	actor := testActor()
	b := testBuilder(t, actor)

	red := color.RGBA{255, 0, 0, 255}
	src := fakeSource{}
	for _, m := range actor.Movies {
		src[m.PosterPath] = red
	}
	assets, err := NewAssets(src, "", 0)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 1080, 1920))
	fs := b.Build(0.365)
	Compose(NewCanvas(img, assets, b.Layout()), b, fs, actor)

	assertColor(t, backgroundColor, img.At(1079, 1919))

	rect := fs.ActivePoster.Rect.Image()
	center := rect.Min.Add(rect.Size().Div(2))
	assertColor(t, red, img.At(center.X, center.Y))
}

func TestCanvasMissingPosterFallsBack(t *testing.T) {
	assets, err := NewAssets(fakeSource{}, "", 0)
	require.NoError(t, err)

	layout := frame.DefaultLayout(1080, 1920)
	img := image.NewRGBA(image.Rect(0, 0, 1080, 1920))
	c := NewCanvas(img, assets, layout)
	c.Clear()

	rect := layout.SlotRect(0).Image()
	c.DrawPoster(ImageContent{Path: "missing.png"}, rect)
	assertColor(t, boxDarkGray, img.At(rect.Min.X+3, rect.Min.Y+3))
	assertColor(t, placeholderEdge, img.At(rect.Min.X, rect.Min.Y))

	_, ok := assets.Image("missing.png")
	assert.False(t, ok)
	assert.True(t, assets.failed["missing.png"])
}

func TestCanvasEndCardWithQR(t *testing.T) {
	actor := testActor()
	b := testBuilder(t, actor)

	blue := color.RGBA{0, 0, 255, 255}
	assets, err := NewAssets(fakeSource{"portrait.png": blue}, "https://example.com/quiz", 256)
	require.NoError(t, err)
	require.NotNil(t, assets.QR())
	assert.Equal(t, image.Pt(256, 256), assets.QR().Bounds().Size())

	img := image.NewRGBA(image.Rect(0, 0, 1080, 1920))
	Compose(NewCanvas(img, assets, b.Layout()), b, b.Build(1), actor)

	// portrait is 90x160, fitted into the 1080 square around the frame center
	assertColor(t, blue, img.At(540, 960))
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "abc", fitText("abc", 100, 1))
	cut := fitText("a very long movie title", 7*8, 1)
	assert.LessOrEqual(t, textWidth(cut, 1), 7*8)
	assert.Contains(t, cut, "...")
	assert.Equal(t, "", fitText("abc", 1, 1))
}

func TestFitInside(t *testing.T) {
	r := image.Rect(0, 420, 1080, 1500)
	assert.Equal(t, image.Rect(236, 420, 843, 1500), fitInside(image.Pt(90, 160), r))
	assert.Equal(t, r, fitInside(image.Pt(10, 10), r))
}
