package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"Locale", KeyLocale, "/zh/", Locale("/zh/")},
		{"Format", KeyFormat, "json", Format("json")},
		{"Mode", KeyMode, "production", Mode("production")},
		{"Base", KeyBase, "/docs/", Base("/docs/")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"File", KeyFile, "README.md", File("README.md")},
		{"Issue", KeyIssue, "link-prefix", Issue("link-prefix")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.attrKey, c.attr.Key)
			assert.Equal(t, c.attrVal, c.attr.Value.String())
		})
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
