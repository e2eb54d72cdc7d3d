package wshub

import (
	"image/color"

	"shootingrange/internal/targets"
	"shootingrange/internal/utility"
)

// FrameSurface collects one frame of circles and ships it to the browser
// when the frame is presented.
type FrameSurface struct {
	client *Client
	frame  ServerMessage
}

func NewFrameSurface(c *Client) *FrameSurface {
	return &FrameSurface{client: c}
}

func (s *FrameSurface) Clear(vp targets.Viewport) {
	s.frame = ServerMessage{
		Type:    "frame",
		Width:   vp.Width,
		Height:  vp.Height,
		Circles: s.frame.Circles[:0],
	}
}

func (s *FrameSurface) FillCircle(x, y, radius float64, fill color.Color) {
	s.frame.Fill = utility.ColorHex(fill)
	s.frame.Circles = append(s.frame.Circles, Circle{X: x, Y: y, R: radius})
}

func (s *FrameSurface) Present(score int) {
	s.frame.Score = score
	s.client.SendMessage(s.frame)
}
