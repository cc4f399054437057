package sink

import (
	"image/color"

	"github.com/matzehuels/archwall/pkg/arch"
)

// Shape is one filled path captured by a [Recorder].
type Shape struct {
	Fill color.NRGBA
	Path arch.Path
}

// Recorder is a surface that keeps every filled path in memory.
type Recorder struct {
	fill    color.NRGBA
	current arch.Path
	shapes  []Shape
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) SetFillColor(c color.Color) {
	r.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *Recorder) BeginPath() { r.current = nil }

func (r *Recorder) MoveTo(x, y float64) {
	r.current = append(r.current, arch.Cmd{Op: arch.OpMoveTo, To: arch.Point{X: x, Y: y}})
}

func (r *Recorder) Arc(cx, cy, radius, start, end float64, ccw bool) {
	r.current = append(r.current, arch.Cmd{
		Op:               arch.OpArc,
		Center:           arch.Point{X: cx, Y: cy},
		Radius:           radius,
		Start:            start,
		End:              end,
		CounterClockwise: ccw,
	})
}

func (r *Recorder) LineTo(x, y float64) {
	r.current = append(r.current, arch.Cmd{Op: arch.OpLineTo, To: arch.Point{X: x, Y: y}})
}

func (r *Recorder) ClosePath() {
	r.current = append(r.current, arch.Cmd{Op: arch.OpClose})
}

// Fill records the current path with the current fill color and clears it.
func (r *Recorder) Fill() error {
	r.shapes = append(r.shapes, Shape{Fill: r.fill, Path: r.current})
	r.current = nil
	return nil
}

// Shapes returns the recorded shapes in paint order.
func (r *Recorder) Shapes() []Shape { return r.shapes }

// Reset discards everything recorded so far.
func (r *Recorder) Reset() {
	r.shapes = nil
	r.current = nil
}

var _ arch.Surface = (*Recorder)(nil)
