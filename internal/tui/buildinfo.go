package tui

import (
	"fmt"
	"runtime/debug"
)

// BuildInfo holds build-time metadata for display in the toolbar and the
// --version output.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ResolveBuild fills in metadata that ldflags did not set. Binaries from
// `go install module@version` carry the module version and VCS stamps in
// runtime/debug.BuildInfo instead.
func ResolveBuild(version, commit, date string) BuildInfo {
	b := BuildInfo{Version: version, Commit: commit, Date: date}
	if b.Version != "" && b.Version != "dev" {
		return b
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		b.Version = mv
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

// ShortCommit returns the first seven characters of the commit.
func (b BuildInfo) ShortCommit() string {
	if len(b.Commit) > 7 {
		return b.Commit[:7]
	}
	return b.Commit
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (%s) %s", b.Version, b.ShortCommit(), b.Date)
}
