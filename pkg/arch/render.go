package arch

import (
	"reflect"

	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// Stats summarizes one render pass.
type Stats struct {
	Painted int
	Skipped int
}

// RenderComposition paints specs onto s in slice order, so each arch
// overlays the ones before it. Degenerate arches are skipped without
// touching the surface. A nil surface (including a typed nil pointer) or
// an unusable canvas width is
// reported before anything is drawn. A failing Fill aborts the pass.
func RenderComposition(specs []Spec, canvasWidth float64, s Surface) (Stats, error) {
	var stats Stats
	if isNil(s) {
		return stats, apperr.New(apperr.ErrCodeSurfaceUnavailable, "no drawing surface")
	}
	if !positive(canvasWidth) {
		return stats, apperr.New(apperr.ErrCodeInvalidInput, "canvas width must be positive, got %v", canvasWidth)
	}

	for i, spec := range specs {
		path := ComputeGeometry(spec, canvasWidth)
		if path.Empty() {
			stats.Skipped++
			continue
		}
		s.SetFillColor(spec.Fill)
		s.BeginPath()
		path.Replay(s)
		if err := s.Fill(); err != nil {
			return stats, apperr.Wrap(apperr.ErrCodeSurfaceFailed, err, "fill arch %d (%s)", i, spec.Name)
		}
		stats.Painted++
	}
	return stats, nil
}

// Render paints the background, if any, and then every arch of c.
func (c Composition) Render(s Surface) (Stats, error) {
	if isNil(s) {
		return Stats{}, apperr.New(apperr.ErrCodeSurfaceUnavailable, "no drawing surface")
	}
	if err := apperr.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return Stats{}, err
	}
	if c.Background != nil {
		w, h := c.Canvas.Width, c.Canvas.Height
		s.SetFillColor(*c.Background)
		s.BeginPath()
		s.MoveTo(0, 0)
		s.LineTo(w, 0)
		s.LineTo(w, h)
		s.LineTo(0, h)
		s.ClosePath()
		if err := s.Fill(); err != nil {
			return Stats{}, apperr.Wrap(apperr.ErrCodeSurfaceFailed, err, "fill background")
		}
	}
	return RenderComposition(c.Arches, c.Canvas.Width, s)
}

// isNil reports whether s is nil or wraps a nil pointer, map, slice,
// func or channel.
func isNil(s Surface) bool {
	if s == nil {
		return true
	}
	switch v := reflect.ValueOf(s); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
