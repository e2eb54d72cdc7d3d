package main

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"shootingrange/internal/targets"
)

var (
	backgroundColor = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	borderColor     = color.Black
)

type circle struct {
	x, y, r float64
	fill    color.Color
}

// frameSurface buffers the frame produced by Tick so Draw can paint it.
type frameSurface struct {
	mu      sync.Mutex
	vp      targets.Viewport
	circles []circle
	score   int
}

func (s *frameSurface) Clear(vp targets.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp = vp
	s.circles = s.circles[:0]
}

func (s *frameSurface) FillCircle(x, y, radius float64, fill color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.circles = append(s.circles, circle{x: x, y: y, r: radius, fill: fill})
}

func (s *frameSurface) Present(score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.score = score
}

// draw paints the buffered frame with its top-left corner at (ox, oy).
// Circles are clipped to the surface like on a canvas.
func (s *frameSurface) draw(screen *ebiten.Image, ox, oy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vp.Empty() {
		return
	}
	x0, y0 := float32(ox), float32(oy)
	w, h := float32(s.vp.Width), float32(s.vp.Height)
	vector.DrawFilledRect(screen, x0, y0, w, h, backgroundColor, false)
	vector.StrokeRect(screen, x0, y0, w, h, 1, borderColor, false)

	bounds := image.Rect(int(ox), int(oy), int(ox+s.vp.Width), int(oy+s.vp.Height))
	dst, ok := screen.SubImage(bounds).(*ebiten.Image)
	if !ok {
		return
	}
	for _, c := range s.circles {
		vector.DrawFilledCircle(dst, float32(ox+c.x), float32(oy+c.y), float32(c.r), c.fill, true)
	}
}
