package config

import (
	"fmt"
)

// ServiceName identifies this server in version output and to MCP clients.
const ServiceName = "vire-credit"

// Version information (set via -ldflags during build).
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Build     string `json:"build"`
	GitCommit string `json:"git_commit"`
}

// Info returns the build information of the running binary.
func Info() BuildInfo {
	return BuildInfo{
		Service:   ServiceName,
		Version:   Version,
		Build:     Build,
		GitCommit: GitCommit,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (build: %s, commit: %s)", b.Service, b.Version, b.Build, b.GitCommit)
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
