package version

import (
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if BuildTime == "" || GitCommit == "" {
		t.Error("build metadata should be initialized")
	}
}

func TestString(t *testing.T) {
	s := String()
	if !strings.HasPrefix(s, "docsitecfg ") {
		t.Errorf("String() = %q, want docsitecfg prefix", s)
	}
	if !strings.Contains(s, GitCommit) {
		t.Errorf("String() = %q, missing commit", s)
	}
}
