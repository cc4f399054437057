package sink

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

func TestRasterSurfaceReferencePixels(t *testing.T) {
	comp := arch.Reference()
	s := NewRasterSurface(comp.Canvas.Width, comp.Canvas.Height, 1)
	defer s.Close()

	if _, err := comp.Render(s); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	white := *comp.Background
	blue, red, yellow := comp.Arches[0].Fill, comp.Arches[1].Fill, comp.Arches[2].Fill

	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"yellow on top of everything", 300, 500, yellow},
		{"red between yellow and blue", 300, 150, red},
		{"blue dome", 300, 50, blue},
		{"blue near apex", 300, 10, blue},
		{"blue left leg", 60, 700, blue},
		{"corner outside dome", 20, 20, white},
		{"above shoulder", 45, 30, white},
		{"below arches", 300, 780, white},
	}
	img := s.Image()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
			if !near(got, tt.want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, stats, err := RenderPNG(arch.Reference(), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	if stats.Painted != 3 {
		t.Errorf("Painted = %d, want 3", stats.Painted)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 400 {
		t.Errorf("bounds = %v, want 300x400", b)
	}
}

func TestRenderPNGInvalid(t *testing.T) {
	tests := []struct {
		name string
		comp arch.Composition
		opts []PNGOption
		code apperr.Code
	}{
		{"zero scale", arch.Reference(), []PNGOption{WithScale(0)}, apperr.ErrCodeInvalidInput},
		{"huge scale", arch.Reference(), []PNGOption{WithScale(100)}, apperr.ErrCodeInvalidInput},
		{"no canvas", arch.Composition{Arches: arch.Reference().Arches}, nil, apperr.ErrCodeInvalidInput},
		{"huge canvas", arch.Composition{Canvas: arch.Canvas{Width: 1e12, Height: 1e12}}, nil, apperr.ErrCodeInvalidInput},
		{"scaled past limit", arch.Composition{Canvas: arch.Canvas{Width: 4096, Height: 4096}}, []PNGOption{WithScale(8)}, apperr.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := RenderPNG(tt.comp, tt.opts...)
			if !apperr.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) <= 2 && d(a.G, b.G) <= 2 && d(a.B, b.B) <= 2 && d(a.A, b.A) <= 2
}
