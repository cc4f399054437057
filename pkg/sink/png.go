package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1.0). A scale of 2 renders
// a 600×800 canvas into a 1200×1600 image.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RasterSurface paints into an anti-aliased pixel buffer.
//
// Coordinates are multiplied by the scale before they reach the gg context,
// so arcs keep their true radius at any resolution.
type RasterSurface struct {
	dc    *gg.Context
	scale float64
}

// NewRasterSurface creates a transparent raster of the given canvas size.
func NewRasterSurface(width, height, scale float64) *RasterSurface {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(width * scale))
	h := int(math.Ceil(height * scale))
	return &RasterSurface{dc: gg.NewContext(w, h), scale: scale}
}

func (s *RasterSurface) SetFillColor(c color.Color) { s.dc.SetColor(c) }

func (s *RasterSurface) BeginPath() { s.dc.ClearPath() }

func (s *RasterSurface) MoveTo(x, y float64) { s.dc.MoveTo(x*s.scale, y*s.scale) }

func (s *RasterSurface) Arc(cx, cy, r, start, end float64, ccw bool) {
	cmd := arch.Cmd{
		Op:               arch.OpArc,
		Center:           arch.Point{X: cx * s.scale, Y: cy * s.scale},
		Radius:           r * s.scale,
		Start:            start,
		End:              end,
		CounterClockwise: ccw,
	}
	from, _ := cmd.ArcEndpoints()
	x, y, ok := s.dc.GetCurrentPoint()
	switch {
	case !ok:
		s.dc.MoveTo(from.X, from.Y)
	case math.Abs(x-from.X) > 1e-9 || math.Abs(y-from.Y) > 1e-9:
		s.dc.LineTo(from.X, from.Y)
	}

	if !ccw {
		s.dc.DrawArc(cmd.Center.X, cmd.Center.Y, cmd.Radius, start, arch.SweepEnd(start, end, false))
		return
	}
	// DrawArc only sweeps towards increasing angles.
	for _, c := range cmd.Cubics() {
		s.dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
	}
}

func (s *RasterSurface) LineTo(x, y float64) { s.dc.LineTo(x*s.scale, y*s.scale) }

func (s *RasterSurface) ClosePath() { s.dc.ClosePath() }

func (s *RasterSurface) Fill() error { return s.dc.Fill() }

// Image returns a snapshot of the pixels painted so far.
func (s *RasterSurface) Image() image.Image { return s.dc.Image() }

// EncodePNG returns the raster as PNG bytes.
func (s *RasterSurface) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the underlying context.
func (s *RasterSurface) Close() error { return s.dc.Close() }

// RenderPNG paints the composition into a PNG image.
func RenderPNG(c arch.Composition, opts ...PNGOption) ([]byte, arch.Stats, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}

	if err := apperr.ValidateScale(r.scale); err != nil {
		return nil, arch.Stats{}, err
	}
	if err := apperr.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return nil, arch.Stats{}, err
	}
	if w, h := c.Canvas.Width*r.scale, c.Canvas.Height*r.scale; w > apperr.MaxCanvasSize || h > apperr.MaxCanvasSize {
		return nil, arch.Stats{}, apperr.New(apperr.ErrCodeInvalidInput,
			"raster size %vx%v exceeds %d pixels per side", w, h, apperr.MaxCanvasSize)
	}

	s := NewRasterSurface(c.Canvas.Width, c.Canvas.Height, r.scale)
	defer s.Close()

	stats, err := c.Render(s)
	if err != nil {
		return nil, stats, err
	}
	data, err := s.EncodePNG()
	return data, stats, err
}

var _ arch.Surface = (*RasterSurface)(nil)
