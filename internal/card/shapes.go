package card

import (
	"math"

	"github.com/fogleman/gg"
)

// roundRect adds a closed rounded rectangle sub-path to dc. The radius is
// clamped to half the shorter side.
func roundRect(dc *gg.Context, x, y, w, h, r float64) {
	r = min(r, w/2, h/2)
	if r < 0 {
		r = 0
	}
	dc.NewSubPath()
	dc.DrawArc(x+r, y+r, r, math.Pi, 1.5*math.Pi)
	dc.DrawArc(x+w-r, y+r, r, 1.5*math.Pi, 2*math.Pi)
	dc.DrawArc(x+w-r, y+h-r, r, 0, 0.5*math.Pi)
	dc.DrawArc(x+r, y+h-r, r, 0.5*math.Pi, math.Pi)
	dc.ClosePath()
}
