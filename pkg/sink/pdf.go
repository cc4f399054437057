package sink

import (
	"bytes"
	"image/color"
	"io"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// PDFSurface paints onto a single PDF page the size of the canvas.
//
// PDF user space is y-up, so y becomes height-y and every arc angle is
// negated; the sweep direction on the page is unchanged. Fill colors are
// written as DeviceRGB and their alpha is ignored.
type PDFSurface struct {
	page     *document.Page
	height   float64
	hasPoint bool
}

// NewPDFSurface starts a one-page PDF document written to w.
func NewPDFSurface(w io.Writer, width, height float64) (*PDFSurface, error) {
	page, err := document.WriteSinglePage(w, &pdf.Rectangle{URx: width, URy: height}, pdf.V1_7, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeSurfaceUnavailable, err, "create PDF page")
	}
	return &PDFSurface{page: page, height: height}, nil
}

func (s *PDFSurface) SetFillColor(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	s.page.SetFillColor(pdfcolor.DeviceRGB(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255))
}

func (s *PDFSurface) BeginPath() { s.hasPoint = false }

func (s *PDFSurface) MoveTo(x, y float64) {
	s.page.MoveTo(x, s.height-y)
	s.hasPoint = true
}

func (s *PDFSurface) Arc(cx, cy, r, start, end float64, ccw bool) {
	stop := arch.SweepEnd(start, end, ccw)
	if s.hasPoint {
		s.page.LineToArc(cx, s.height-cy, r, -start, -stop)
	} else {
		s.page.MoveToArc(cx, s.height-cy, r, -start, -stop)
	}
	s.hasPoint = true
}

func (s *PDFSurface) LineTo(x, y float64) {
	if !s.hasPoint {
		s.MoveTo(x, y)
		return
	}
	s.page.LineTo(x, s.height-y)
}

func (s *PDFSurface) ClosePath() { s.page.ClosePath() }

// Fill fills the current path using the nonzero winding rule.
func (s *PDFSurface) Fill() error {
	s.page.Fill()
	s.hasPoint = false
	return s.page.Err
}

// Close finishes the page and the document.
func (s *PDFSurface) Close() error { return s.page.Close() }

// RenderPDF paints the composition onto a single-page PDF.
func RenderPDF(c arch.Composition) ([]byte, arch.Stats, error) {
	if err := apperr.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return nil, arch.Stats{}, err
	}

	var buf bytes.Buffer
	s, err := NewPDFSurface(&buf, c.Canvas.Width, c.Canvas.Height)
	if err != nil {
		return nil, arch.Stats{}, err
	}

	stats, err := c.Render(s)
	if err != nil {
		return nil, stats, err
	}
	if err := s.Close(); err != nil {
		return nil, stats, apperr.Wrap(apperr.ErrCodeSurfaceFailed, err, "finish PDF")
	}
	return buf.Bytes(), stats, nil
}

var _ arch.Surface = (*PDFSurface)(nil)
