package renderer

// Content is one piece of row information. The concrete types are
// ImageContent, TextContent and ScoreContent.
type Content interface {
	isContent()
}

// ImageContent is a picture loaded through the poster source
type ImageContent struct {
	Path string
}

// TextContent is a single line of text. Highlighted text is drawn in yellow.
type TextContent struct {
	Text      string
	Highlight bool
}

// ScoreContent is a percentage score with its fresh/rotten marker.
// Value is -1 when the site has no score.
type ScoreContent struct {
	Value int
	Label string
}

func (ImageContent) isContent() {}
func (TextContent) isContent() {}
func (ScoreContent) isContent() {}
