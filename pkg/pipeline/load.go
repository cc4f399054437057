package pipeline

import (
	"bytes"

	"github.com/matzehuels/archwall/pkg/arch"
	"github.com/matzehuels/archwall/pkg/cache"
	archio "github.com/matzehuels/archwall/pkg/io"
)

// Load reads the composition at path, or returns the reference
// composition when path is empty.
func Load(path string) (arch.Composition, error) {
	if path == "" {
		return arch.Reference(), nil
	}
	return archio.ImportFile(path)
}

// Hash returns the content hash of c. Two compositions that serialize to
// the same file have the same hash. The hash is taken over the TOML
// encoding, which also carries nan and inf fields.
func Hash(c arch.Composition) (string, error) {
	var buf bytes.Buffer
	if err := archio.WriteTOML(c, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
