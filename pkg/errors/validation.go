package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateOutputPath validates a file path that rendered artifacts are written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not end in a path separator
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path %q names a directory", path)
	}

	return nil
}

// nameRegex matches composition and arch labels.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]*$`)

// ValidateName validates a composition or arch label. Empty names are allowed.
func ValidateName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters): %q", name)
	}
	if !nameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid name: %q", name)
	}
	return nil
}

// MaxCanvasSize bounds each canvas side, in user units. Raster output
// applies the same bound to the scaled pixel size.
const MaxCanvasSize = 16384

// ValidateCanvas checks that a canvas size is positive, finite and at
// most MaxCanvasSize on each side.
func ValidateCanvas(width, height float64) error {
	if !positive(width) {
		return New(ErrCodeInvalidInput, "canvas width must be positive, got %v", width)
	}
	if !positive(height) {
		return New(ErrCodeInvalidInput, "canvas height must be positive, got %v", height)
	}
	if width > MaxCanvasSize || height > MaxCanvasSize {
		return New(ErrCodeInvalidInput, "canvas %vx%v exceeds %d per side", width, height, MaxCanvasSize)
	}
	return nil
}

// ValidateScale checks a raster scale factor.
func ValidateScale(scale float64) error {
	if !positive(scale) || scale > 16 {
		return New(ErrCodeInvalidInput, "scale must be in (0, 16], got %v", scale)
	}
	return nil
}

// ValidateURL validates a service URL such as a Redis address.
// It ensures the URL has one of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of %v schemes", schemes)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
