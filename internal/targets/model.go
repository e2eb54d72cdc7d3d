package targets

import (
	"math"
	"time"
)

type Target struct {
	ID        int
	X         float64
	Y         float64
	Radius    float64
	SpawnedAt time.Time
}

// Contains reports whether (x, y) lies strictly inside the target's circle.
func (t *Target) Contains(x, y float64) bool {
	return math.Hypot(x-t.X, y-t.Y) < t.Radius
}

// Viewport is the drawing surface size in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Fits reports whether a circle of radius r can be placed fully inside v.
func (v Viewport) Fits(r float64) bool {
	return v.Width >= 2*r && v.Height >= 2*r
}
