package sink

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

type jsonOutput struct {
	Name       string     `json:"name,omitempty"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Background string     `json:"background,omitempty"`
	Painted    int        `json:"painted"`
	Skipped    int        `json:"skipped"`
	Arches     []jsonArch `json:"arches"`
}

type jsonArch struct {
	Index   int          `json:"index"`
	Name    string       `json:"name,omitempty"`
	Width   number       `json:"width"`
	Height  number       `json:"height"`
	Offset  number       `json:"offset"`
	Color   string       `json:"color"`
	Painted bool         `json:"painted"`
	Shape   *jsonShape   `json:"geometry,omitempty"`
	Path    []jsonPathOp `json:"path,omitempty"`
}

// number is a float that encodes NaN and ±Inf as null, which JSON cannot
// represent otherwise.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type jsonShape struct {
	Left        float64   `json:"left"`
	Top         float64   `json:"top"`
	Radius      float64   `json:"radius"`
	Center      jsonPoint `json:"center"`
	BottomLeft  jsonPoint `json:"bottom_left"`
	BottomRight jsonPoint `json:"bottom_right"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonPathOp struct {
	Op               string     `json:"op"`
	To               *jsonPoint `json:"to,omitempty"`
	Center           *jsonPoint `json:"center,omitempty"`
	Radius           float64    `json:"radius,omitempty"`
	Start            *float64   `json:"start,omitempty"`
	End              *float64   `json:"end,omitempty"`
	CounterClockwise bool       `json:"ccw,omitempty"`
}

// RenderJSON exports the computed geometry of every arch as a pretty-printed
// JSON document, in paint order. Degenerate arches are listed with
// painted=false and no geometry, matching what a render pass would skip;
// their non-finite fields are written as null.
//
// Nothing is painted; the output is meant for external tools that want to
// reproduce or inspect the drawing.
func RenderJSON(c arch.Composition) ([]byte, error) {
	if err := apperr.ValidateCanvas(c.Canvas.Width, c.Canvas.Height); err != nil {
		return nil, err
	}

	out := jsonOutput{
		Name:   c.Name,
		Width:  c.Canvas.Width,
		Height: c.Canvas.Height,
		Arches: make([]jsonArch, len(c.Arches)),
	}
	if c.Background != nil {
		out.Background = arch.FormatColor(*c.Background)
	}

	for i, s := range c.Arches {
		a := jsonArch{
			Index:  i,
			Name:   s.Name,
			Width:  number(s.Width),
			Height: number(s.Height),
			Offset: number(s.Offset),
			Color:  arch.FormatColor(s.Fill),
		}
		if g, ok := arch.Measure(s, c.Canvas.Width); ok {
			a.Painted = true
			a.Shape = &jsonShape{
				Left:        g.Left,
				Top:         g.Top,
				Radius:      g.Radius,
				Center:      point(g.Center),
				BottomLeft:  point(g.BottomLeft),
				BottomRight: point(g.BottomRight),
			}
			a.Path = pathOps(arch.ComputeGeometry(s, c.Canvas.Width))
			out.Painted++
		} else {
			out.Skipped++
		}
		out.Arches[i] = a
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "encode geometry")
	}
	return data, nil
}

func point(p arch.Point) jsonPoint { return jsonPoint{X: p.X, Y: p.Y} }

func pathOps(p arch.Path) []jsonPathOp {
	ops := make([]jsonPathOp, 0, len(p))
	for _, c := range p {
		op := jsonPathOp{Op: c.Op.String()}
		switch c.Op {
		case arch.OpMoveTo, arch.OpLineTo:
			to := point(c.To)
			op.To = &to
		case arch.OpArc:
			center := point(c.Center)
			start, end := c.Start, c.End
			op.Center = &center
			op.Radius = c.Radius
			op.Start = &start
			op.End = &end
			op.CounterClockwise = c.CounterClockwise
		}
		ops = append(ops, op)
	}
	return ops
}
