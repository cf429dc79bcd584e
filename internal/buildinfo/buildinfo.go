package buildinfo

import (
	"runtime/debug"
	"time"

	"github.com/kgtools/foundation/internal/timehelper"
)

// These vars are set by -ldflags at build time.
var (
	GitCommit string
	BuildDate string
)

var readBuildInfo = debug.ReadBuildInfo

// String returns "<commit> @ <commit time>" for the running binary, or
// "<unknown>" when neither ldflags nor the Go toolchain recorded it.
func String() string {
	commit, date := GitCommit, BuildDate
	if commit == "" {
		commit, date = fromVCS()
	}
	if commit == "" {
		return "<unknown>"
	}
	if date == "" {
		return commit
	}
	return commit + " @ " + date
}

func fromVCS() (commit, date string) {
	info, ok := readBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				date = t.In(timehelper.NYC).Format("2006-01-02 15:04:05-07:00")
			} else {
				date = s.Value
			}
		}
	}
	return commit, date
}
