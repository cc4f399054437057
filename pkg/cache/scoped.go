package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools can share one
// backend without colliding, e.g. the CLI and a long-running server
// pointed at the same Redis:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) CompositionKey(hash string) string {
	return k.prefix + k.inner.CompositionKey(hash)
}

func (k *ScopedKeyer) ArtifactKey(compositionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(compositionHash, opts)
}
