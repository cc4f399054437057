package arch

import (
	"image/color"

	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// Default canvas dimensions used when a composition leaves them unset.
const (
	DefaultCanvasWidth  = 600.0
	DefaultCanvasHeight = 800.0
)

// Spec describes a single arch. Width and Height are in pixels; Offset is
// the distance from the top of the canvas to the top of the cap.
type Spec struct {
	Name   string
	Width  float64
	Height float64
	Offset float64
	Fill   color.NRGBA
}

// Degenerate reports whether the arch has no paintable area.
func (s Spec) Degenerate() bool {
	return !positive(s.Width) || !positive(s.Height) || !finite(s.Offset)
}

// Canvas is the drawing area. Only the width affects arch geometry; the
// height sizes the output document.
type Canvas struct {
	Width  float64
	Height float64
}

// Composition is an ordered set of arches painted onto one canvas.
// Arches[0] is painted first and ends up bottom-most.
type Composition struct {
	Name       string
	Canvas     Canvas
	Background *color.NRGBA
	Arches     []Spec
}

// Validate checks the structural properties of the composition. Degenerate
// arches are not an error; they are skipped when painting.
func (c Composition) Validate() error {
	if err := apperr.ValidateName(c.Name); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "composition name")
	}
	if err := apperr.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "composition %q", c.Name)
	}
	if len(c.Arches) == 0 {
		return apperr.New(apperr.ErrCodeInvalidComposition, "composition %q has no arches", c.Name)
	}
	for i, a := range c.Arches {
		if err := apperr.ValidateName(a.Name); err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "arch %d", i)
		}
	}
	return nil
}

// WithDefaults fills in a missing canvas size.
func (c Composition) WithDefaults() Composition {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = DefaultCanvasWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = DefaultCanvasHeight
	}
	return c
}

// Reference returns the three-arch composition modelled on Sol LeWitt's
// wall drawings: a wide blue arch touching the top of the canvas, a
// narrower red arch stepped down inside it and a thin yellow arch on top.
func Reference() Composition {
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	return Composition{
		Name:       "lewitt",
		Canvas:     Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Background: &white,
		Arches: []Spec{
			{Name: "blue", Width: 520, Height: 760, Offset: 0, Fill: color.NRGBA{R: 0x20, G: 0x96, B: 0xce, A: 0xff}},
			{Name: "red", Width: 380, Height: 620, Offset: 120, Fill: color.NRGBA{R: 0xe0, G: 0x49, B: 0x67, A: 0xff}},
			{Name: "yellow", Width: 180, Height: 500, Offset: 220, Fill: color.NRGBA{R: 0xf4, G: 0xd3, B: 0x0c, A: 0xff}},
		},
	}
}
