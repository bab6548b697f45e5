package renderer

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/actor2video/internal/frame"
)

// Renderer draws the pieces of a frame. Compose decides what to draw, the
// renderer only knows how.
type Renderer interface {
	Clear()
	DrawMysteryPlaceholder(rect image.Rectangle)
	DrawPoster(poster ImageContent, rect image.Rectangle)
	DrawRow(y int, descriptor string, info []Content)
	DrawActor(portrait ImageContent, rect image.Rectangle, blend float64)
	DrawCounter(clues int)
	DrawEndCard(name string, levels []string, alpha float64)
}

var (
	backgroundColor  = color.RGBA{20, 20, 20, 255}
	textWhite        = color.RGBA{255, 255, 255, 255}
	textYellow       = color.RGBA{255, 255, 0, 255}
	textGray         = color.RGBA{128, 128, 128, 255}
	textLightGray    = color.RGBA{200, 200, 200, 255}
	boxDarkGray      = color.RGBA{40, 40, 40, 255}
	placeholderEdge  = color.RGBA{100, 100, 100, 255}
	placeholderGlyph = color.RGBA{150, 150, 150, 255}
	outlineColor     = color.RGBA{0, 0, 0, 255}
	freshColor       = color.RGBA{250, 50, 40, 255}
	rottenColor      = color.RGBA{100, 170, 40, 255}
)

// Размеры текста задаются целым масштабом шрифта 7x13
const (
	descriptorScale = 3
	infoScale       = 3
	counterScale    = 6
	nameScale       = 6
	commentScale    = 4
	levelScale      = 3

	margin  = 10
	padding = 10

	// выше этого порога оценка считается "свежей"
	freshThreshold = 60
)

var face = basicfont.Face7x13

// Canvas is the Renderer over an in-memory RGBA frame
type Canvas struct {
	img    *image.RGBA
	assets *Assets
	layout frame.Layout
}

func NewCanvas(img *image.RGBA, assets *Assets, layout frame.Layout) *Canvas {
	return &Canvas{img: img, assets: assets, layout: layout}
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Clear() {
	c.fill(c.img.Bounds(), backgroundColor)
}

func (c *Canvas) DrawMysteryPlaceholder(rect image.Rectangle) {
	c.fill(rect, boxDarkGray)
	c.stroke(rect, placeholderEdge)

	scale := min(rect.Dx(), rect.Dy()) / 2 / face.Height
	if scale < 1 {
		scale = 1
	}
	w, h := textWidth("?", scale), face.Height*scale
	at := image.Pt(rect.Min.X+(rect.Dx()-w)/2, rect.Min.Y+(rect.Dy()-h)/2)
	c.drawText("?", at, scale, placeholderGlyph, 1, false)
}

func (c *Canvas) DrawPoster(poster ImageContent, rect image.Rectangle) {
	if rect.Empty() {
		return
	}
	settled := rect.Dx() == c.layout.PosterWidth && rect.Dy() == c.layout.RowHeight
	img, ok := c.assets.Scaled(poster.Path, rect.Size(), settled)
	if !ok {
		c.DrawMysteryPlaceholder(rect)
		return
	}
	draw.Draw(c.img, rect, img, image.Point{}, draw.Src)
}

// DrawRow пишет категорию над строкой и сведения о фильме по центру строки:
// название слева, оценки и сборы прижаты к правому краю
func (c *Canvas) DrawRow(y int, descriptor string, info []Content) {
	left := c.layout.PosterWidth + margin*4
	c.drawText(descriptor, image.Pt(left, y+30), descriptorScale, textLightGray, 1, false)
	if len(info) == 0 {
		return
	}

	infoY := y + c.layout.RowHeight/2 + 15
	x := c.layout.FrameWidth - margin
	for i := len(info) - 1; i >= 1; i-- {
		x -= measure(info[i], infoScale)
		c.drawContent(info[i], image.Pt(x, infoY), infoScale)
		x -= margin * 2
	}

	titleX := c.layout.PosterWidth + margin*2
	if title, ok := info[0].(TextContent); ok {
		title.Text = fitText(title.Text, x-titleX, infoScale)
		c.drawContent(title, image.Pt(titleX, infoY), infoScale)
		return
	}
	c.drawContent(info[0], image.Pt(titleX, infoY), infoScale)
}

func (c *Canvas) DrawActor(portrait ImageContent, rect image.Rectangle, blend float64) {
	c.DrawMysteryPlaceholder(rect)
	if blend <= 0 {
		return
	}
	src, ok := c.assets.Image(portrait.Path)
	if !ok {
		return
	}
	fit := fitInside(src.Bounds().Size(), rect)
	img, ok := c.assets.Scaled(portrait.Path, fit.Size(), false)
	if !ok {
		return
	}
	c.blend(img, fit, blend)
}

func (c *Canvas) DrawCounter(clues int) {
	text := strconv.Itoa(clues)
	w, h := textWidth(text, counterScale), face.Height*counterScale
	x := c.layout.FrameWidth - w - 30
	y := 30

	box := image.Rect(x-padding, y-padding, x+w+padding, y+h+padding)
	c.fill(box, boxDarkGray)
	c.stroke(box, textGray)
	c.drawText(text, image.Pt(x, y), counterScale, textWhite, 1, true)
}

func (c *Canvas) DrawEndCard(name string, levels []string, alpha float64) {
	centered := func(s string, y, scale int, col color.Color) int {
		x := (c.layout.FrameWidth - textWidth(s, scale)) / 2
		c.drawText(s, image.Pt(x, y), scale, col, alpha, true)
		return y + face.Height*scale
	}

	y := centered(strings.ToUpper(name), 50, nameScale, textWhite)
	y = centered("Comment your score!", y+30, commentScale, textYellow)
	y += 40
	for _, l := range levels {
		y = centered(l, y, levelScale, textWhite) + 20
	}

	if qr := c.assets.QR(); qr != nil {
		size := qr.Bounds().Size()
		at := image.Pt((c.layout.FrameWidth-size.X)/2, c.layout.FrameHeight-size.Y-60)
		c.blend(qr, image.Rectangle{Min: at, Max: at.Add(size)}, alpha)
	}
}

func (c *Canvas) drawContent(content Content, at image.Point, scale int) {
	switch v := content.(type) {
	case TextContent:
		col := textWhite
		if v.Highlight {
			col = textYellow
		}
		c.drawText(v.Text, at, scale, col, 1, false)
	case ScoreContent:
		side := face.Height * scale
		marker := rottenColor
		switch {
		case v.Value < 0:
			marker = textGray
		case v.Value > freshThreshold:
			marker = freshColor
		}
		c.fill(image.Rect(at.X, at.Y, at.X+side, at.Y+side), marker)
		c.drawText(v.Label, image.Pt(at.X+side+margin, at.Y), scale, textWhite, 1, false)
	case ImageContent:
		side := face.Height * scale
		c.DrawPoster(v, image.Rect(at.X, at.Y, at.X+side, at.Y+side))
	}
}

func measure(content Content, scale int) int {
	switch v := content.(type) {
	case TextContent:
		return textWidth(v.Text, scale)
	case ScoreContent:
		return face.Height*scale + margin + textWidth(v.Label, scale)
	case ImageContent:
		return face.Height * scale
	}
	return 0
}

func (c *Canvas) drawText(s string, at image.Point, scale int, col color.Color, alpha float64, outline bool) {
	if s == "" || alpha <= 0 {
		return
	}
	if outline {
		for _, d := range []image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			c.blitText(s, at.Add(d.Mul(scale)), scale, outlineColor, alpha)
		}
	}
	c.blitText(s, at, scale, col, alpha)
}

// blitText рисует строку мелким шрифтом и растягивает её без сглаживания
func (c *Canvas) blitText(s string, at image.Point, scale int, col color.Color, alpha float64) {
	glyphs := textImage(s, col)
	size := glyphs.Bounds().Size().Mul(scale)
	big := image.NewRGBA(image.Rectangle{Max: size})
	draw.NearestNeighbor.Scale(big, big.Bounds(), glyphs, glyphs.Bounds(), draw.Src, nil)
	c.blend(big, image.Rectangle{Min: at, Max: at.Add(size)}, alpha)
}

func (c *Canvas) blend(src image.Image, r image.Rectangle, alpha float64) {
	if alpha >= 1 {
		draw.Draw(c.img, r, src, src.Bounds().Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(c.img, r, src, src.Bounds().Min, mask, image.Point{}, draw.Over)
}

func (c *Canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Canvas) stroke(r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.fill(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	c.fill(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func textImage(s string, col color.Color) *image.RGBA {
	d := &font.Drawer{Face: face, Src: image.NewUniform(col)}
	w := d.MeasureString(s).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, w, face.Height))
	d.Dst = img
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(s)
	return img
}

func textWidth(s string, scale int) int {
	return font.MeasureString(face, s).Ceil() * scale
}

// fitText обрезает строку под ширину, добавляя многоточие
func fitText(s string, width, scale int) string {
	if textWidth(s, scale) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		if cut := string(runes) + "..."; textWidth(cut, scale) <= width {
			return cut
		}
	}
	return ""
}

// fitInside returns the largest rectangle of the given aspect centered in r
func fitInside(size image.Point, r image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 {
		return r
	}
	w, h := r.Dx(), r.Dx()*size.Y/size.X
	if h > r.Dy() {
		h = r.Dy()
		w = r.Dy() * size.X / size.Y
	}
	origin := image.Pt(r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()-h)/2)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}
