package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// ReadTOML decodes a TOML composition from r. Unknown keys are rejected so
// that a misspelled field does not silently fall back to its zero value.
//
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (arch.Composition, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return arch.Composition{}, apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "decode TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return arch.Composition{}, apperr.New(apperr.ErrCodeInvalidComposition, "unknown key %q", undecoded[0].String())
	}
	return f.composition()
}

// ReadJSON decodes a JSON composition from r. Like [ReadTOML] it rejects
// unknown fields.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (arch.Composition, error) {
	var f file
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return arch.Composition{}, apperr.Wrap(apperr.ErrCodeInvalidComposition, err, "decode JSON")
	}
	return f.composition()
}

// ImportFile reads the composition stored at path. The extension selects
// the format: ".toml" or ".json".
func ImportFile(path string) (arch.Composition, error) {
	read, err := readerFor(path)
	if err != nil {
		return arch.Composition{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return arch.Composition{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "composition %s", path)
		}
		return arch.Composition{}, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	c, err := read(f)
	if err != nil {
		return arch.Composition{}, apperr.Propagate(err, "%s", path)
	}
	return c, nil
}

func readerFor(path string) (func(io.Reader) (arch.Composition, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ReadTOML, nil
	case ".json":
		return ReadJSON, nil
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unsupported composition file %q (want .toml or .json)", path)
	}
}
