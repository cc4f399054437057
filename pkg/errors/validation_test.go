package errors

import (
	"math"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "arches.svg", false},
		{"nested", "out/arches.png", false},
		{"absolute", "/tmp/arches.pdf", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"trailing slash", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"blue", false},
		{"Wall Drawing 579", false},
		{"outer-arch_1.v2", false},
		{" leading space", true},
		{"semi;colon", true},
		{string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		err := ValidateName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateCanvas(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"reference", 600, 800, false},
		{"zero width", 0, 800, true},
		{"negative height", 600, -1, true},
		{"nan", math.NaN(), 800, true},
		{"inf", 600, math.Inf(1), true},
		{"max size", MaxCanvasSize, MaxCanvasSize, false},
		{"too wide", MaxCanvasSize + 1, 800, true},
		{"huge", 1e12, 1e12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvas(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvas(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	for _, s := range []float64{0.5, 1, 2, 16} {
		if err := ValidateScale(s); err != nil {
			t.Errorf("ValidateScale(%v) = %v, want nil", s, err)
		}
	}
	for _, s := range []float64{0, -1, 17, math.NaN()} {
		if err := ValidateScale(s); err == nil {
			t.Errorf("ValidateScale(%v) = nil, want error", s)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", false},
		{"rediss", "rediss://cache.internal:6380", false},
		{"empty", "", true},
		{"http", "http://localhost:6379", true},
		{"bare host", "localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input, "redis", "rediss")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
