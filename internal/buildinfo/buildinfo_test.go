package buildinfo

import (
	"strings"
	"testing"
)

func TestShortPrefersVersion(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "v1.2.0", "abc123"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short()=%q, want v1.2.0", got)
	}

	Version = "dev"
	if got := Short(); got != "abc123" {
		t.Fatalf("Short()=%q, want abc123", got)
	}
}

func TestString(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v0.3.1"

	s := String()
	if !strings.HasPrefix(s, "morsekey v0.3.1 ") {
		t.Fatalf("String()=%q", s)
	}
}
