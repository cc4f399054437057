package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := String(); !strings.HasPrefix(got, "version: v9.9.9\n") {
		t.Errorf("String() = %q", got)
	}
	if got := Template(); !strings.Contains(got, "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "archwall/v9.9.9" {
		t.Errorf("UserAgent() = %q", got)
	}
}
