package version

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	info := Info{CommitHash: "abcdef123456", BuildTime: "2026-01-02", Version: "dev"}
	if got := info.String(); !strings.HasPrefix(got, "contractgen dev (commit abcdef123456") {
		t.Errorf("String() = %q", got)
	}

	info.Version = "1.2.0"
	if got := info.String(); !strings.HasPrefix(got, "contractgen 1.2.0 ") {
		t.Errorf("String() = %q", got)
	}
	if got := info.Short(); got != "abcdef1" {
		t.Errorf("Short() = %q, want abcdef1", got)
	}
}
