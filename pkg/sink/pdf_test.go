package sink

import (
	"bytes"
	"io"
	"math"
	"testing"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics/content"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

func TestRenderPDF(t *testing.T) {
	data, stats, err := RenderPDF(arch.Reference())
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if stats.Painted != 3 {
		t.Errorf("Painted = %d, want 3", stats.Painted)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("missing PDF header: %q", data[:min(len(data), 16)])
	}
	if !bytes.Contains(data[max(0, len(data)-32):], []byte("%%EOF")) {
		t.Errorf("missing %%EOF trailer")
	}
}

func TestRenderPDFInvalidCanvas(t *testing.T) {
	comp := arch.Reference()
	comp.Canvas.Width = -1
	if _, _, err := RenderPDF(comp); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderPDFSkipsDegenerate(t *testing.T) {
	comp := arch.Reference()
	comp.Arches = append(comp.Arches, arch.Spec{Name: "flat", Width: 100, Height: 0})
	_, stats, err := RenderPDF(comp)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
}

// pathPoints returns the on-path points of the page content: move and line
// targets and curve end points. Control points are left out.
func pathPoints(t *testing.T, stream content.Stream) []arch.Point {
	t.Helper()
	num := func(o pdf.Object) float64 {
		switch v := o.(type) {
		case pdf.Number:
			return float64(v)
		case pdf.Real:
			return float64(v)
		case pdf.Integer:
			return float64(v)
		}
		t.Fatalf("operand %v (%T) is not a number", o, o)
		return 0
	}
	var pts []arch.Point
	for _, op := range stream {
		switch op.Name {
		case content.OpMoveTo, content.OpLineTo, content.OpCurveTo, content.OpCurveToV, content.OpCurveToY:
			n := len(op.Args)
			pts = append(pts, arch.Point{X: num(op.Args[n-2]), Y: num(op.Args[n-1])})
		}
	}
	return pts
}

func TestPDFSurfaceDomeOrientation(t *testing.T) {
	ref := arch.Reference()
	for _, spec := range ref.Arches {
		t.Run(spec.Name, func(t *testing.T) {
			comp := arch.Composition{Canvas: ref.Canvas, Arches: []arch.Spec{spec}}
			s, err := NewPDFSurface(io.Discard, comp.Canvas.Width, comp.Canvas.Height)
			if err != nil {
				t.Fatalf("NewPDFSurface() error = %v", err)
			}
			if _, err := comp.Render(s); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			pts := pathPoints(t, s.page.Stream)
			if len(pts) == 0 {
				t.Fatal("no path operators on the page")
			}
			apex := comp.Canvas.Height - spec.Offset
			base := comp.Canvas.Height - spec.Offset - spec.Height
			midX := comp.Canvas.Width / 2

			var found bool
			for _, p := range pts {
				if p.Y > apex+1e-6 || p.Y < base-1e-6 {
					t.Errorf("point %v outside [%g, %g] in page space", p, base, apex)
				}
				if math.Abs(p.X-midX) < 1e-6 && math.Abs(p.Y-apex) < 1e-6 {
					found = true
				}
			}
			if !found {
				t.Errorf("dome does not reach (%g, %g); points = %v", midX, apex, pts)
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
		})
	}
}
