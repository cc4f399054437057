package arch

import "image/color"

// Surface is the 2D drawing context arches are painted onto.
//
// Coordinates are y-down. Arc sweeps from start to end around (cx, cy);
// ccw selects decreasing angles instead of increasing ones. A surface is
// owned by its caller and is not safe for concurrent use.
type Surface interface {
	SetFillColor(c color.Color)
	BeginPath()
	MoveTo(x, y float64)
	Arc(cx, cy, r, start, end float64, ccw bool)
	LineTo(x, y float64)
	ClosePath()
	Fill() error
}
