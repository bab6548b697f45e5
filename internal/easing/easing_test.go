package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasingBoundaries(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"out-cubic":    EaseOutCubic,
		"in-out-cubic": EaseInOutCubic,
	}

	for name, f := range funcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, f(0))
			assert.Equal(t, 1.0, f(1))

			// Дрейф за пределы [0,1] не должен ломать значения
			assert.Equal(t, 0.0, f(-1e-12))
			assert.Equal(t, 1.0, f(1+1e-12))
			assert.Equal(t, 0.0, f(-3))
			assert.Equal(t, 1.0, f(7))

			prev := f(0)
			for i := 1; i <= 1000; i++ {
				v := f(float64(i) / 1000)
				if v < prev {
					t.Fatalf("%s is not monotonic at t=%.3f: %f < %f", name, float64(i)/1000, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseInOutCubicMidpoint(t *testing.T) {
	assert.InDelta(t, 0.5, EaseInOutCubic(0.5), 1e-12)

	// Наклон максимален в точке перегиба
	const h = 1e-4
	mid := (EaseInOutCubic(0.5+h) - EaseInOutCubic(0.5-h)) / (2 * h)
	early := (EaseInOutCubic(0.25+h) - EaseInOutCubic(0.25-h)) / (2 * h)
	late := (EaseInOutCubic(0.75+h) - EaseInOutCubic(0.75-h)) / (2 * h)
	assert.Greater(t, mid, early)
	assert.Greater(t, mid, late)
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{100, 20, 0.25, 80},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Lerp(tt.a, tt.b, tt.t), 1e-12)
	}
}
