package cache

import "strconv"

// Keyer builds cache keys.
type Keyer interface {
	// CompositionKey identifies a composition by its content hash.
	CompositionKey(hash string) string

	// ArtifactKey identifies one rendered output of a composition.
	ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer is the standard key scheme: "kind:hash".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) CompositionKey(hash string) string {
	return "composition:" + hash
}

func (DefaultKeyer) ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string {
	// Scale only matters for raster output.
	if opts.Format != "png" {
		opts.Scale = 0
	}
	return hashKey("artifact", compositionHash, opts.Format, strconv.FormatFloat(opts.Scale, 'g', -1, 64))
}

var _ Keyer = DefaultKeyer{}
