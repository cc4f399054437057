package sink

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/archwall/pkg/arch"
)

func TestRecorderCapturesPaintOrder(t *testing.T) {
	comp := arch.Reference()
	rec := NewRecorder()

	stats, err := comp.Render(rec)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if stats.Painted != 3 {
		t.Errorf("Painted = %d, want 3", stats.Painted)
	}

	shapes := rec.Shapes()
	if len(shapes) != 4 {
		t.Fatalf("got %d shapes, want background + 3 arches", len(shapes))
	}
	if shapes[0].Fill != *comp.Background {
		t.Errorf("first shape fill = %v, want background", shapes[0].Fill)
	}
	for i, a := range comp.Arches {
		got := shapes[i+1]
		if got.Fill != a.Fill {
			t.Errorf("shape %d fill = %v, want %v", i+1, got.Fill, a.Fill)
		}
		if diff := cmp.Diff(arch.ComputeGeometry(a, comp.Canvas.Width), got.Path); diff != "" {
			t.Errorf("shape %d path mismatch (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestRecorderArcDirection(t *testing.T) {
	rec := NewRecorder()
	rec.BeginPath()
	rec.Arc(10, 20, 5, math.Pi, 0, false)
	rec.Arc(10, 20, 5, 0, math.Pi, true)
	if err := rec.Fill(); err != nil {
		t.Fatal(err)
	}

	path := rec.Shapes()[0].Path
	if path[0].CounterClockwise || !path[1].CounterClockwise {
		t.Errorf("ccw flags = %v, %v; want false, true", path[0].CounterClockwise, path[1].CounterClockwise)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	if _, err := arch.Reference().Render(rec); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	if n := len(rec.Shapes()); n != 0 {
		t.Errorf("after Reset got %d shapes", n)
	}
}
