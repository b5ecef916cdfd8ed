package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

// stamp sets the ldflags variables and the embedded build info for one test.
func stamp(t *testing.T, version, commit, date string, settings ...debug.BuildSetting) {
	t.Helper()
	oldV, oldC, oldD, oldRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() { Version, Commit, Date, readBuildInfo = oldV, oldC, oldD, oldRead })

	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{GoVersion: "go1.26.0", Settings: settings}, true
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		date     string
		settings []debug.BuildSetting
		short    string
		release  bool
	}{
		{name: "unstamped", version: "dev", short: "dev"},
		{
			name:    "release stamp",
			version: "1.2.0", commit: "abc1234def", date: "2026-03-01T10:00:00Z",
			short: "1.2.0-abc1234", release: true,
		},
		{
			name:    "vcs fallback",
			version: "dev",
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-02-01T00:00:00Z"},
				{Key: "vcs.modified", Value: "true"},
			},
			short: "dev-0123456-dirty",
		},
		{
			name:    "stamp wins over vcs",
			version: "1.2.0", commit: "feedbee",
			settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789"}},
			short:    "1.2.0-feedbee", release: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stamp(t, tc.version, tc.commit, tc.date, tc.settings...)
			b := Get()
			if got := b.Short(); got != tc.short {
				t.Errorf("Short() = %q, want %q", got, tc.short)
			}
			if b.Release() != tc.release {
				t.Errorf("Release() = %v, want %v", b.Release(), tc.release)
			}
			if b.GoVersion != "go1.26.0" {
				t.Errorf("GoVersion = %q", b.GoVersion)
			}
		})
	}
}

func TestBuildString(t *testing.T) {
	stamp(t, "1.2.0", "abc1234", "2026-03-01T10:00:00Z")
	s := Get().String()
	for _, want := range []string{"1.2.0-abc1234", "built 2026-03-01T10:00:00Z", "go1.26.0", runtime.GOOS} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	stamp(t, "1.2.0", "abc1234", "")
	ua := UserAgent("voicefeedback")
	want := "voicefeedback/1.2.0-abc1234 (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
	if ua != want {
		t.Errorf("UserAgent() = %q, want %q", ua, want)
	}
}

func TestFields(t *testing.T) {
	stamp(t, "1.2.0", "abc1234", "")
	f := Get().Fields()
	if f["version"] != "1.2.0" || f["commit"] != "abc1234" {
		t.Errorf("Fields() = %v", f)
	}
	if _, ok := f["date"]; ok {
		t.Errorf("empty date should be omitted: %v", f)
	}
}
