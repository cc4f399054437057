package arch

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" or an SVG color name
// such as "gold".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, apperr.New(apperr.ErrCodeInvalidColor, "empty color")
	}
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
		}
		return color.NRGBA{}, apperr.New(apperr.ErrCodeInvalidColor, "unknown color name %q", s)
	}

	alpha := uint8(0xff)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, apperr.Wrap(apperr.ErrCodeInvalidColor, err, "invalid alpha in %q", s)
		}
		alpha = uint8(a)
		hex = s[:7]
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, apperr.Wrap(apperr.ErrCodeInvalidColor, err, "invalid hex color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as "#rrggbb", or "#rrggbbaa" when not opaque.
func FormatColor(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
