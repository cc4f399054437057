package sink

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/archwall/pkg/arch"
)

// SVGSurface writes each filled path as an SVG <path> element.
type SVGSurface struct {
	width, height float64
	fill          color.NRGBA
	d             strings.Builder
	hasPoint      bool
	cur           arch.Point
	body          bytes.Buffer
	title         string
}

// NewSVGSurface creates an SVG surface for a canvas of the given size.
func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

// SetTitle sets the document <title>.
func (s *SVGSurface) SetTitle(title string) { s.title = title }

func (s *SVGSurface) SetFillColor(c color.Color) {
	s.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (s *SVGSurface) BeginPath() {
	s.d.Reset()
	s.hasPoint = false
}

func (s *SVGSurface) MoveTo(x, y float64) {
	fmt.Fprintf(&s.d, "M%s %s ", num(x), num(y))
	s.hasPoint = true
	s.cur = arch.Point{X: x, Y: y}
}

func (s *SVGSurface) Arc(cx, cy, r, start, end float64, ccw bool) {
	from, _ := arch.Cmd{Op: arch.OpArc, Center: arch.Point{X: cx, Y: cy}, Radius: r, Start: start, End: end}.ArcEndpoints()
	switch {
	case !s.hasPoint:
		s.MoveTo(from.X, from.Y)
	case num(from.X) != num(s.cur.X) || num(from.Y) != num(s.cur.Y):
		s.LineTo(from.X, from.Y)
	}

	stop := arch.SweepEnd(start, end, ccw)
	sweep := stop - start
	if math.Abs(sweep) >= 2*math.Pi {
		// A single SVG arc cannot close on itself; draw two halves.
		mid := start + math.Copysign(math.Pi, sweep)
		s.arcTo(cx, cy, r, mid, false, ccw)
		s.arcTo(cx, cy, r, start, false, ccw)
		return
	}
	s.arcTo(cx, cy, r, stop, math.Abs(sweep) > math.Pi, ccw)
}

func (s *SVGSurface) arcTo(cx, cy, r, angle float64, large, ccw bool) {
	x, y := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
	fmt.Fprintf(&s.d, "A%s %s 0 %d %d %s %s ", num(r), num(r), flag(large), flag(!ccw), num(x), num(y))
	s.cur = arch.Point{X: x, Y: y}
}

func (s *SVGSurface) LineTo(x, y float64) {
	if !s.hasPoint {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.d, "L%s %s ", num(x), num(y))
	s.cur = arch.Point{X: x, Y: y}
}

func (s *SVGSurface) ClosePath() {
	s.d.WriteString("Z")
}

// Fill emits the current path as a filled <path> element.
func (s *SVGSurface) Fill() error {
	d := strings.TrimSpace(s.d.String())
	if d == "" {
		return nil
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="#%02x%02x%02x"`, d, s.fill.R, s.fill.G, s.fill.B)
	if s.fill.A != 0xff {
		fmt.Fprintf(&s.body, ` fill-opacity="%s"`, num(float64(s.fill.A)/255))
	}
	s.body.WriteString("/>\n")
	s.BeginPath()
	return nil
}

// Bytes returns the complete SVG document.
func (s *SVGSurface) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.width), num(s.height), s.width, s.height)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.title))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderSVG paints the composition into a new SVG document.
func RenderSVG(c arch.Composition) ([]byte, arch.Stats, error) {
	s := NewSVGSurface(c.Canvas.Width, c.Canvas.Height)
	s.SetTitle(c.Name)
	stats, err := c.Render(s)
	if err != nil {
		return nil, stats, err
	}
	return s.Bytes(), stats, nil
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ arch.Surface = (*SVGSurface)(nil)
