package site

import "git.home.luguber.info/inful/docsitecfg/internal/foundation"

// ModeEnvVar is the environment variable selecting the build mode.
const ModeEnvVar = "NODE_ENV"

// BuildMode selects between production and development builds.
type BuildMode string

const (
	ModeProduction  BuildMode = "production"
	ModeDevelopment BuildMode = "development"
)

// ResolveBuildMode maps a raw mode value to a BuildMode. Only the exact value
// "production" selects production; anything else (including "") is development.
func ResolveBuildMode(value string) BuildMode {
	if value == string(ModeProduction) {
		return ModeProduction
	}
	return ModeDevelopment
}

var buildModes = foundation.NewNormalizer(map[string]BuildMode{
	"production":  ModeProduction,
	"prod":        ModeProduction,
	"development": ModeDevelopment,
	"dev":         ModeDevelopment,
}, ModeDevelopment)

// ParseBuildMode is the lenient variant used for user supplied configuration:
// it trims and case-folds, and reports whether the value was recognized.
func ParseBuildMode(value string) (BuildMode, bool) {
	return buildModes.Lookup(value)
}

// IsProduction reports whether the mode is production.
func (m BuildMode) IsProduction() bool { return m == ModeProduction }

func (m BuildMode) String() string { return string(m) }
