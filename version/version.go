// Package version reports what build of feedbackd or voicefeedback is
// running. Release builds stamp the variables below with -ldflags; other
// builds fall back to the VCS data the Go toolchain embeds.
//
//	go build -ldflags "-X github.com/kbukum/voicefeedback/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

const shortCommit = 7

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get merges the ldflags values with embedded VCS settings. Stamped values
// win.
func Get() Build {
	b := Build{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := readBuildInfo(); ok {
		if bi.GoVersion != "" {
			b.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if b.Commit == "" {
					b.Commit = s.Value
				}
			case "vcs.time":
				if b.Date == "" {
					b.Date = s.Value
				}
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}
	if len(b.Commit) > shortCommit {
		b.Commit = b.Commit[:shortCommit]
	}
	return b
}

// Release reports whether the build carries a stamped, clean version.
func (b Build) Release() bool {
	return b.Version != "dev" && !b.Modified
}

// Short is the version plus commit, e.g. "1.2.0-abc1234" or
// "dev-abc1234-dirty".
func (b Build) Short() string {
	parts := []string{b.Version}
	if b.Commit != "" {
		parts = append(parts, b.Commit)
	}
	if b.Modified {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// String is the one-line form printed by the version commands.
func (b Build) String() string {
	var extra []string
	if b.Commit != "" {
		extra = append(extra, "commit "+b.Commit)
	}
	if b.Date != "" {
		extra = append(extra, "built "+b.Date)
	}
	extra = append(extra, b.GoVersion, b.Platform)
	return fmt.Sprintf("%s (%s)", b.Short(), strings.Join(extra, ", "))
}

// Fields returns the build as log or JSON fields.
func (b Build) Fields() map[string]interface{} {
	f := map[string]interface{}{
		"version":    b.Version,
		"go_version": b.GoVersion,
		"platform":   b.Platform,
	}
	if b.Commit != "" {
		f["commit"] = b.Commit
	}
	if b.Date != "" {
		f["date"] = b.Date
	}
	if b.Modified {
		f["modified"] = true
	}
	return f
}

// UserAgent is the User-Agent the CLI sends to feedbackd, e.g.
// "voicefeedback/1.2.0-abc1234 (linux/amd64)".
func UserAgent(product string) string {
	b := Get()
	return fmt.Sprintf("%s/%s (%s)", product, b.Short(), b.Platform)
}
