package arch

import (
	"errors"
	"fmt"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// callLog is a Surface that records calls as strings.
type callLog struct {
	calls   []string
	fills   []color.Color
	failAt  int
	fillNum int
}

func (l *callLog) SetFillColor(c color.Color) {
	l.fills = append(l.fills, c)
	l.calls = append(l.calls, "color")
}
func (l *callLog) BeginPath()          { l.calls = append(l.calls, "begin") }
func (l *callLog) MoveTo(x, y float64) { l.calls = append(l.calls, fmt.Sprintf("move %g %g", x, y)) }
func (l *callLog) Arc(cx, cy, r, start, end float64, ccw bool) {
	l.calls = append(l.calls, fmt.Sprintf("arc %g %g %g ccw=%v", cx, cy, r, ccw))
}
func (l *callLog) LineTo(x, y float64) { l.calls = append(l.calls, fmt.Sprintf("line %g %g", x, y)) }
func (l *callLog) ClosePath()          { l.calls = append(l.calls, "close") }
func (l *callLog) Fill() error {
	l.fillNum++
	l.calls = append(l.calls, "fill")
	if l.failAt > 0 && l.fillNum == l.failAt {
		return errors.New("surface lost")
	}
	return nil
}

func TestRenderCompositionPaintOrder(t *testing.T) {
	comp := Reference()
	log := &callLog{}

	stats, err := RenderComposition(comp.Arches, comp.Canvas.Width, log)
	if err != nil {
		t.Fatalf("RenderComposition() error = %v", err)
	}
	if stats.Painted != 3 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 3 painted", stats)
	}

	want := []color.Color{comp.Arches[0].Fill, comp.Arches[1].Fill, comp.Arches[2].Fill}
	if diff := cmp.Diff(want, log.fills); diff != "" {
		t.Errorf("fill colors out of order (-want +got):\n%s", diff)
	}
}

func TestRenderCompositionCalls(t *testing.T) {
	log := &callLog{}
	specs := []Spec{{Width: 520, Height: 760, Offset: 0}}

	if _, err := RenderComposition(specs, 600, log); err != nil {
		t.Fatalf("RenderComposition() error = %v", err)
	}

	want := []string{
		"color",
		"begin",
		"move 40 260",
		"arc 300 260 260 ccw=false",
		"line 560 760",
		"line 40 760",
		"close",
		"fill",
	}
	if diff := cmp.Diff(want, log.calls); diff != "" {
		t.Errorf("surface calls (-want +got):\n%s", diff)
	}
}

func TestRenderCompositionSkipsDegenerate(t *testing.T) {
	log := &callLog{}
	specs := []Spec{
		{Name: "ghost", Width: 0, Height: 500, Offset: 0},
		{Name: "real", Width: 100, Height: 200, Offset: 10},
	}

	stats, err := RenderComposition(specs, 600, log)
	if err != nil {
		t.Fatalf("RenderComposition() error = %v", err)
	}
	if stats.Painted != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 1 painted 1 skipped", stats)
	}
	if len(log.fills) != 1 {
		t.Errorf("degenerate arch touched the surface: %v", log.calls)
	}
}

func TestRenderCompositionOnlyDegenerate(t *testing.T) {
	log := &callLog{}

	stats, err := RenderComposition([]Spec{{Width: 0, Height: 10}}, 600, log)
	if err != nil {
		t.Fatalf("RenderComposition() error = %v", err)
	}
	if stats.Skipped != 1 || len(log.calls) != 0 {
		t.Errorf("surface should be unchanged, got calls %v", log.calls)
	}
}

func TestRenderCompositionErrors(t *testing.T) {
	t.Run("nil surface", func(t *testing.T) {
		_, err := RenderComposition(Reference().Arches, 600, nil)
		if !apperr.Is(err, apperr.ErrCodeSurfaceUnavailable) {
			t.Errorf("error = %v, want %s", err, apperr.ErrCodeSurfaceUnavailable)
		}
	})

	t.Run("typed nil surface", func(t *testing.T) {
		var log *callLog
		if _, err := RenderComposition(Reference().Arches, 600, log); !apperr.Is(err, apperr.ErrCodeSurfaceUnavailable) {
			t.Errorf("RenderComposition() error = %v, want %s", err, apperr.ErrCodeSurfaceUnavailable)
		}
		if _, err := Reference().Render(log); !apperr.Is(err, apperr.ErrCodeSurfaceUnavailable) {
			t.Errorf("Render() error = %v, want %s", err, apperr.ErrCodeSurfaceUnavailable)
		}
	})

	t.Run("bad canvas", func(t *testing.T) {
		log := &callLog{}
		_, err := RenderComposition(Reference().Arches, -1, log)
		if !apperr.Is(err, apperr.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want %s", err, apperr.ErrCodeInvalidInput)
		}
		if len(log.calls) != 0 {
			t.Errorf("surface touched before validation: %v", log.calls)
		}
	})

	t.Run("fill fails", func(t *testing.T) {
		log := &callLog{failAt: 2}
		stats, err := RenderComposition(Reference().Arches, 600, log)
		if !apperr.Is(err, apperr.ErrCodeSurfaceFailed) {
			t.Errorf("error = %v, want %s", err, apperr.ErrCodeSurfaceFailed)
		}
		if stats.Painted != 1 {
			t.Errorf("Painted = %d, want 1", stats.Painted)
		}
		if log.fillNum != 2 {
			t.Errorf("render continued after failure: %d fills", log.fillNum)
		}
	})
}

func TestRenderCompositionIdempotent(t *testing.T) {
	comp := Reference()
	first, second := &callLog{}, &callLog{}

	if _, err := comp.Render(first); err != nil {
		t.Fatal(err)
	}
	if _, err := comp.Render(second); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.calls, second.calls); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
}

func TestCompositionRenderBackground(t *testing.T) {
	comp := Reference()
	log := &callLog{}

	if _, err := comp.Render(log); err != nil {
		t.Fatal(err)
	}
	if len(log.fills) != 4 {
		t.Fatalf("fills = %d, want background + 3 arches", len(log.fills))
	}
	if log.fills[0] != *comp.Background {
		t.Errorf("first fill = %v, want background %v", log.fills[0], *comp.Background)
	}

	comp.Background = nil
	log = &callLog{}
	if _, err := comp.Render(log); err != nil {
		t.Fatal(err)
	}
	if len(log.fills) != 3 {
		t.Errorf("fills = %d, want 3 without background", len(log.fills))
	}
}

func TestCompositionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Composition)
		wantErr bool
	}{
		{"reference", func(*Composition) {}, false},
		{"degenerate arch allowed", func(c *Composition) { c.Arches[0].Width = 0 }, false},
		{"no arches", func(c *Composition) { c.Arches = nil }, true},
		{"zero canvas", func(c *Composition) { c.Canvas.Width = 0 }, true},
		{"bad name", func(c *Composition) { c.Name = "a;b" }, true},
		{"bad arch name", func(c *Composition) { c.Arches[1].Name = "\x00" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Reference()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.ErrCodeInvalidComposition) {
				t.Errorf("Validate() code = %v, want %v", apperr.GetCode(err), apperr.ErrCodeInvalidComposition)
			}
		})
	}
}

func TestWithDefaults(t *testing.T) {
	c := Composition{Arches: []Spec{{Width: 10, Height: 10}}}.WithDefaults()
	if c.Canvas.Width != DefaultCanvasWidth || c.Canvas.Height != DefaultCanvasHeight {
		t.Errorf("canvas = %+v, want defaults", c.Canvas)
	}

	c = Composition{Canvas: Canvas{Width: 300, Height: 400}}.WithDefaults()
	if c.Canvas.Width != 300 || c.Canvas.Height != 400 {
		t.Errorf("WithDefaults overwrote explicit canvas: %+v", c.Canvas)
	}
}
