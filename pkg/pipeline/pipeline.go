// Package pipeline runs the load → render flow shared by every archwall
// entry point.
//
// The CLI subcommands and the HTTP server all go through a [Runner], so
// validation, caching and logging behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	comp, err := pipeline.Load("lewitt.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, comp, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Scale:   2,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Each artifact is cached under the composition's content hash, the
// format and (for PNG) the scale. A second run with the same inputs is
// served from the cache unless [Options.Refresh] is set.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor when none is given.
const DefaultScale = 1.0

// ValidFormats lists the supported output formats in their canonical order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Options configures one pipeline run.
type Options struct {
	// Formats to render. Defaults to [svg].
	Formats []string `json:"formats,omitempty"`

	// Scale is the PNG scale factor. Ignored by other formats.
	Scale float64 `json:"scale,omitempty"`

	// Refresh skips cache lookups. Fresh results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs.
	RunID uuid.UUID

	// Hash is the content hash of the composition.
	Hash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	CacheInfo CacheInfo
}

// Stats summarizes a run.
type Stats struct {
	Arches     int
	Painted    int
	Skipped    int
	RenderTime time.Duration
}

// CacheInfo tracks which formats were served from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return apperr.New(apperr.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list such as "svg, png" into
// validated, de-duplicated format names.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := apperr.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// countPaintable returns how many arches a render pass would paint.
func countPaintable(c arch.Composition) (painted, skipped int) {
	for _, s := range c.Arches {
		if _, ok := arch.Measure(s, c.Canvas.Width); ok {
			painted++
		} else {
			skipped++
		}
	}
	return painted, skipped
}
