package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/osse101/HunterSystem_Go/internal/domain"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Version         string `json:"version"`
	GoVersion       string `json:"go_version"`
	GitCommit       string `json:"git_commit,omitempty"`
	BuildTime       string `json:"build_time,omitempty"`
	SnapshotVersion int    `json:"snapshot_version"`
}

// Build-time variables, set with -ldflags "-X .../internal/handler.Version=..."
var (
	Version   = ""
	GitCommit = ""
	BuildTime = ""
)

// HandleVersion reports the build and the snapshot document version this binary writes
func HandleVersion() http.HandlerFunc {
	info := buildVersionInfo(debug.ReadBuildInfo)
	return func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, info)
	}
}

// buildVersionInfo prefers ldflags, then $VERSION, then the VCS stamp the Go
// toolchain embeds in the binary
func buildVersionInfo(readBuildInfo func() (*debug.BuildInfo, bool)) VersionInfo {
	info := VersionInfo{
		Version:         Version,
		GoVersion:       runtime.Version(),
		GitCommit:       GitCommit,
		BuildTime:       BuildTime,
		SnapshotVersion: domain.SnapshotSchemaVersion,
	}
	if info.Version == "" {
		info.Version = os.Getenv("VERSION")
	}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.GitCommit == "":
				info.GitCommit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}

	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}
