package version

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/docsitecfg/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by the CLI.
func String() string {
	return "docsitecfg " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
