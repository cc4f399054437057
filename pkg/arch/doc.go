// Package arch computes and paints LeWitt-style arches.
//
// An arch is a straight-sided rectangle capped by a semicircle whose
// diameter equals the rectangle's width. A [Composition] is an ordered list
// of arches on a canvas; the list order is the paint order, so later arches
// cover earlier ones wherever they overlap.
//
// # Geometry
//
// [ComputeGeometry] is a pure function from a [Spec] and a canvas width to a
// closed [Path]. Every arch is centered horizontally on the canvas:
//
//	radius = width / 2
//	left   = canvasWidth/2 - width/2
//	top    = offset
//	center = (left + radius, top + radius)
//
// The path starts at the left end of the cap, sweeps the semicircle from
// angle π to angle 0, runs down the right side to (left+width, top+height),
// across the bottom to (left, top+height) and closes back up the left side.
//
// # Sweep Direction
//
// Coordinates are y-down, like an HTML canvas or an image. The arc is
// emitted with CounterClockwise = false, meaning the angle increases from
// start to end. Going from π to 2π in y-down space passes through 3π/2, the
// top of the circle, so the dome bulges upward. Surfaces with a y-up
// coordinate system (PDF) must mirror both the y axis and the angles.
//
// # Painting
//
// [RenderComposition] replays each arch onto a [Surface] in order.
// Degenerate arches (non-positive or non-finite width or height) are
// skipped silently. A nil surface fails fast before anything is drawn.
//
//	comp := arch.Reference()
//	rec := sink.NewRecorder()
//	stats, err := comp.Render(rec)
package arch
