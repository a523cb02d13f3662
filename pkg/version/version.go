package version

import (
	"os/exec"
	"strings"

	"github.com/carlmjohnson/versioninfo"
	"golang.org/x/mod/semver"
)

// release is stamped at link time:
//
//	go build -ldflags "-X github.com/cryptosim/hagelin/pkg/version.release=v1.2.0"
var release = ""

type CX52VersionInfoGit struct {
	Commit string `json:"commit"`
	Dirty  bool   `json:"dirty"`
}

type CX52VersionInfo struct {
	Release string             `json:"release"`
	Tagged  bool               `json:"tagged"`
	Major   string             `json:"major,omitempty"`
	Git     CX52VersionInfoGit `json:"git"`
}

func GetCX52Release() *CX52VersionInfo {
	return resolve(release, versioninfo.Version)
}

func resolve(stamped, module string) *CX52VersionInfo {
	rel := strings.TrimSpace(stamped)
	if rel == "" && semver.IsValid(module) {
		rel = module
	}

	info := &CX52VersionInfo{
		Git: CX52VersionInfoGit{
			Commit: versioninfo.Revision,
			Dirty:  versioninfo.DirtyBuild,
		},
	}

	if semver.IsValid(rel) {
		info.Release = semver.Canonical(rel)
		info.Tagged = semver.Prerelease(rel) == ""
		info.Major = semver.Major(rel)
		return info
	}

	info.Release = "unknown"
	if rel != "" {
		info.Release = "unparsable release '" + rel + "'"
	} else if gitBranch, err := getGitBranch(); err == nil && gitBranch != "" {
		// Fallback: try to get the current git branch
		info.Release = "untagged build, current branch: '" + gitBranch + "'"
	}
	return info
}

// getGitBranch attempts to get the current git branch name
func getGitBranch() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	branch := strings.TrimSpace(string(output))
	return branch, nil
}
