package io

import (
	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

type file struct {
	Name   string     `toml:"name,omitempty" json:"name,omitempty"`
	Canvas canvas     `toml:"canvas" json:"canvas"`
	Arches []archSpec `toml:"arch" json:"arch"`
}

type canvas struct {
	Width      float64 `toml:"width,omitempty" json:"width,omitempty"`
	Height     float64 `toml:"height,omitempty" json:"height,omitempty"`
	Background string  `toml:"background,omitempty" json:"background,omitempty"`
}

type archSpec struct {
	Name   string  `toml:"name,omitempty" json:"name,omitempty"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	Offset float64 `toml:"offset" json:"offset"`
	Color  string  `toml:"color" json:"color"`
}

func (f file) composition() (arch.Composition, error) {
	c := arch.Composition{
		Name:   f.Name,
		Canvas: arch.Canvas{Width: f.Canvas.Width, Height: f.Canvas.Height},
		Arches: make([]arch.Spec, len(f.Arches)),
	}
	if f.Canvas.Background != "" {
		bg, err := arch.ParseColor(f.Canvas.Background)
		if err != nil {
			return arch.Composition{}, apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "canvas background")
		}
		c.Background = &bg
	}
	for i, a := range f.Arches {
		fill, err := arch.ParseColor(a.Color)
		if err != nil {
			return arch.Composition{}, apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "arch %d (%s)", i, a.Name)
		}
		c.Arches[i] = arch.Spec{Name: a.Name, Width: a.Width, Height: a.Height, Offset: a.Offset, Fill: fill}
	}

	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return arch.Composition{}, err
	}
	return c, nil
}

func fromComposition(c arch.Composition) file {
	f := file{
		Name:   c.Name,
		Canvas: canvas{Width: c.Canvas.Width, Height: c.Canvas.Height},
		Arches: make([]archSpec, len(c.Arches)),
	}
	if c.Background != nil {
		f.Canvas.Background = arch.FormatColor(*c.Background)
	}
	for i, a := range c.Arches {
		f.Arches[i] = archSpec{Name: a.Name, Width: a.Width, Height: a.Height, Offset: a.Offset, Color: arch.FormatColor(a.Fill)}
	}
	return f
}
