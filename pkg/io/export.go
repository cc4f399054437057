package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
)

// WriteTOML encodes c as TOML and writes it to w. The output can be read
// back with [ReadTOML].
func WriteTOML(c arch.Composition, w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(fromComposition(c)); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "encode TOML")
	}
	return nil
}

// WriteJSON encodes c as indented JSON and writes it to w.
func WriteJSON(c arch.Composition, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromComposition(c)); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "encode JSON")
	}
	return nil
}

// ExportFile writes c to path, choosing the format from the extension.
func ExportFile(c arch.Composition, path string) error {
	if err := apperr.ValidateOutputPath(path); err != nil {
		return err
	}

	var write func(arch.Composition, io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		write = WriteTOML
	case ".json":
		write = WriteJSON
	default:
		return apperr.New(apperr.ErrCodeInvalidFormat, "unsupported composition file %q (want .toml or .json)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(c, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
