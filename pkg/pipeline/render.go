package pipeline

import (
	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/sink"
)

// RenderFormat paints c in one output format.
func RenderFormat(c arch.Composition, format string, scale float64) ([]byte, arch.Stats, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(c)
	case FormatPNG:
		return sink.RenderPNG(c, sink.WithScale(scale))
	case FormatPDF:
		return sink.RenderPDF(c)
	case FormatJSON:
		data, err := sink.RenderJSON(c)
		if err != nil {
			return nil, arch.Stats{}, err
		}
		painted, skipped := countPaintable(c)
		return data, arch.Stats{Painted: painted, Skipped: skipped}, nil
	default:
		return nil, arch.Stats{}, apperr.New(apperr.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
