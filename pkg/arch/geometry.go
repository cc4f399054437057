package arch

import "math"

// Point is a position in y-down canvas coordinates.
type Point struct {
	X, Y float64
}

// Op identifies a path command.
type Op uint8

const (
	OpMoveTo Op = iota + 1
	OpArc
	OpLineTo
	OpClose
)

func (o Op) String() string {
	switch o {
	case OpMoveTo:
		return "move"
	case OpArc:
		return "arc"
	case OpLineTo:
		return "line"
	case OpClose:
		return "close"
	default:
		return "unknown"
	}
}

// Cmd is one path command. MoveTo and LineTo use To; Arc uses Center,
// Radius, Start, End and CounterClockwise; Close uses nothing.
type Cmd struct {
	Op               Op
	To               Point
	Center           Point
	Radius           float64
	Start, End       float64
	CounterClockwise bool
}

// Path is an ordered list of commands describing one closed shape.
type Path []Cmd

// Empty reports whether the path draws nothing.
func (p Path) Empty() bool { return len(p) == 0 }

// Replay issues the path's commands on s, without beginning or filling.
func (p Path) Replay(s Surface) {
	for _, c := range p {
		switch c.Op {
		case OpMoveTo:
			s.MoveTo(c.To.X, c.To.Y)
		case OpArc:
			s.Arc(c.Center.X, c.Center.Y, c.Radius, c.Start, c.End, c.CounterClockwise)
		case OpLineTo:
			s.LineTo(c.To.X, c.To.Y)
		case OpClose:
			s.ClosePath()
		}
	}
}

// Geometry is the measured shape of one arch.
type Geometry struct {
	Left, Top   float64
	Radius      float64
	Center      Point
	BottomLeft  Point
	BottomRight Point
}

// Measure computes the arch's placement on a canvas of the given width.
// The second result is false when the arch is degenerate.
func Measure(s Spec, canvasWidth float64) (Geometry, bool) {
	if s.Degenerate() || !positive(canvasWidth) {
		return Geometry{}, false
	}
	radius := s.Width / 2
	left := canvasWidth/2 - s.Width/2
	top := s.Offset
	return Geometry{
		Left:        left,
		Top:         top,
		Radius:      radius,
		Center:      Point{X: left + radius, Y: top + radius},
		BottomLeft:  Point{X: left, Y: top + s.Height},
		BottomRight: Point{X: left + s.Width, Y: top + s.Height},
	}, true
}

// ComputeGeometry returns the closed outline of the arch: a semicircular
// cap swept clockwise (y-down) from π to 0, then the right side, the
// bottom edge and the implicit left side. Degenerate arches yield an empty
// path.
func ComputeGeometry(s Spec, canvasWidth float64) Path {
	g, ok := Measure(s, canvasWidth)
	if !ok {
		return nil
	}
	return Path{
		{Op: OpMoveTo, To: Point{X: g.Left, Y: g.Center.Y}},
		{Op: OpArc, Center: g.Center, Radius: g.Radius, Start: math.Pi, End: 0},
		{Op: OpLineTo, To: g.BottomRight},
		{Op: OpLineTo, To: g.BottomLeft},
		{Op: OpClose},
	}
}

// SweepEnd returns the end angle adjusted so that moving from start to the
// result follows the requested direction: increasing for clockwise
// (y-down), decreasing for counter-clockwise. An end that already lies in
// the requested direction is returned unchanged, as is any non-finite
// input.
func SweepEnd(start, end float64, ccw bool) float64 {
	const twoPi = 2 * math.Pi
	if !finite(start) || !finite(end) {
		return end
	}
	if ccw {
		if end <= start {
			return end
		}
		d := math.Mod(end-start, twoPi)
		if d > 0 {
			d -= twoPi
		}
		return start + d
	}
	if end >= start {
		return end
	}
	d := math.Mod(end-start, twoPi)
	if d < 0 {
		d += twoPi
	}
	return start + d
}

// Cubic is one cubic Bézier segment; the start point is implied by the
// previous segment.
type Cubic struct {
	C1, C2, To Point
}

// Cubics approximates an arc command with cubic Bézier segments of at most
// a quarter turn each. Sweeps beyond a full turn are cut to one turn. It
// returns nil for non-arc commands and non-finite angles.
func (c Cmd) Cubics() []Cubic {
	if c.Op != OpArc || !positive(c.Radius) || !finite(c.Start) || !finite(c.End) {
		return nil
	}
	start := c.Start
	end := SweepEnd(start, c.End, c.CounterClockwise)
	if end == start {
		return nil
	}
	if math.Abs(end-start) > 2*math.Pi {
		end = start + math.Copysign(2*math.Pi, end-start)
	}

	n := int(math.Ceil(math.Abs(end-start) / (math.Pi / 2)))
	step := (end - start) / float64(n)
	k := 4.0 / 3.0 * c.Radius * math.Tan(step/4)

	cx, cy, r := c.Center.X, c.Center.Y, c.Radius
	phi := start
	x0, y0 := cx+r*math.Cos(phi), cy+r*math.Sin(phi)
	out := make([]Cubic, 0, n)
	for range n {
		c1 := Point{X: x0 - k*math.Sin(phi), Y: y0 + k*math.Cos(phi)}
		phi += step
		x3, y3 := cx+r*math.Cos(phi), cy+r*math.Sin(phi)
		c2 := Point{X: x3 + k*math.Sin(phi), Y: y3 - k*math.Cos(phi)}
		out = append(out, Cubic{C1: c1, C2: c2, To: Point{X: x3, Y: y3}})
		x0, y0 = x3, y3
	}
	return out
}

// ArcEndpoints returns where an arc command starts and ends.
func (c Cmd) ArcEndpoints() (from, to Point) {
	end := SweepEnd(c.Start, c.End, c.CounterClockwise)
	from = Point{X: c.Center.X + c.Radius*math.Cos(c.Start), Y: c.Center.Y + c.Radius*math.Sin(c.Start)}
	to = Point{X: c.Center.X + c.Radius*math.Cos(end), Y: c.Center.Y + c.Radius*math.Sin(end)}
	return from, to
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func positive(v float64) bool {
	return v > 0 && finite(v)
}
