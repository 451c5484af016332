// Package version holds the build version reported by health checks and the CLI.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Current is set at build time:
//
//	go build -ldflags "-X remotcyberhelp/internal/shared/version.Current=v1.4.0"
var Current = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns the canonical build version, or "dev" for unversioned builds.
func String() string {
	v := Normalize(Current)
	if !semver.IsValid(v) {
		return "dev"
	}
	return semver.Canonical(v)
}
