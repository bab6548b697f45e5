package motion

import (
	"image"
	"math"

	"github.com/ivlev/actor2video/internal/easing"
)

// Rect is an on-screen rectangle in integer pixels
type Rect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Image converts the rectangle to image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

type rectF struct {
	x, y, w, h float64
}

func (r rectF) round() Rect {
	return Rect{
		X: int(math.Round(r.x)),
		Y: int(math.Round(r.y)),
		W: int(math.Round(r.w)),
		H: int(math.Round(r.h)),
	}
}

// fullscreen finds the largest centered rectangle with the poster's aspect
// ratio that fits into the frame
func fullscreen(posterW, posterH, frameW, frameH int) rectF {
	fw, fh := float64(frameW), float64(frameH)
	if posterW <= 0 || posterH <= 0 {
		return rectF{0, 0, fw, fh}
	}

	aspect := float64(posterW) / float64(posterH)
	var w, h float64
	if fw/fh < aspect {
		// Кадр уже постера: упираемся в ширину
		w = fw
		h = fw / aspect
	} else {
		h = fh
		w = fh * aspect
	}

	return rectF{(fw - w) / 2, (fh - h) / 2, w, h}
}

// FullscreenRect returns the stall rectangle of a poster
func FullscreenRect(posterW, posterH, frameW, frameH int) Rect {
	return fullscreen(posterW, posterH, frameW, frameH).round()
}

// Poster computes the rectangle of an animating poster inside its phase.
//
// During the first fullscreenFraction of the phase the poster is held at full
// screen. The rest of the phase shrinks it into (targetX, targetY, posterW,
// posterH) with an ease-out cubic curve; x, y, width and height move
// independently.
func Poster(local float64, targetX, targetY, posterW, posterH, frameW, frameH int, fullscreenFraction float64) Rect {
	local = easing.Clamp01(local)
	start := fullscreen(posterW, posterH, frameW, frameH)

	if local < fullscreenFraction {
		return start.round()
	}

	adjusted := 1.0
	if fullscreenFraction < 1 {
		adjusted = (local - fullscreenFraction) / (1 - fullscreenFraction)
	}
	if adjusted >= 1 {
		return Rect{X: targetX, Y: targetY, W: posterW, H: posterH}
	}

	t := easing.EaseOutCubic(adjusted)
	return rectF{
		x: easing.Lerp(start.x, float64(targetX), t),
		y: easing.Lerp(start.y, float64(targetY), t),
		w: easing.Lerp(start.w, float64(posterW), t),
		h: easing.Lerp(start.h, float64(posterH), t),
	}.round()
}

// Reveal is the state of the final actor reveal
type Reveal struct {
	Stalled bool    // mystery box only, no actor yet
	Blend   float64 // 0 = mystery placeholder, 1 = actor fully visible
}

// ActorReveal computes the cross-fade factor of the actor reveal. An optional
// stall window at the start of the phase keeps the mystery box on screen; it
// is split off the same way as the full screen hold of a poster.
func ActorReveal(local, stallFraction float64) Reveal {
	local = easing.Clamp01(local)
	if local < stallFraction {
		return Reveal{Stalled: true}
	}

	adjusted := 1.0
	if stallFraction < 1 {
		adjusted = (local - stallFraction) / (1 - stallFraction)
	}
	return Reveal{Blend: easing.EaseInOutCubic(adjusted)}
}

// ActorRect grows a centered square from startSize to the short side of the
// frame. It shares the blend factor with the cross-fade.
func ActorRect(blend float64, startSize, frameW, frameH int) Rect {
	target := float64(min(frameW, frameH))
	size := easing.Lerp(float64(startSize), target, easing.Clamp01(blend))
	return rectF{
		x: (float64(frameW) - size) / 2,
		y: (float64(frameH) - size) / 2,
		w: size,
		h: size,
	}.round()
}
