package rangegame

import (
	"image/color"

	"shootingrange/internal/targets"
)

// Surface is what a frame is drawn onto. Hosts provide one per engine.
type Surface interface {
	Clear(vp targets.Viewport)
	FillCircle(x, y, radius float64, fill color.Color)
}

// Presenter is implemented by surfaces that flush a finished frame, for
// example by sending it to a browser.
type Presenter interface {
	Present(score int)
}

// PointerToSurface converts client (screen) coordinates into surface-local
// ones using the surface's bounding rectangle offset.
func PointerToSurface(clientX, clientY, rectLeft, rectTop float64) (x, y float64) {
	return clientX - rectLeft, clientY - rectTop
}
