package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidReleaseRef is returned when a release reference cannot be parsed
var ErrInvalidReleaseRef = goerr.New("invalid release reference, expected owner/repo@tag")

// ReleaseRef points at one asset of a GitHub release
type ReleaseRef struct {
	Owner string // Repository owner
	Repo  string // Repository name
	Tag   string // Release tag name, "latest" selects the latest release
	Asset string // Asset file name
}

// ParseReleaseRef parses "owner/repo@tag". A missing tag means the latest release.
func ParseReleaseRef(ref, asset string) (*ReleaseRef, error) {
	repoPart, tag, found := strings.Cut(strings.TrimSpace(ref), "@")
	if !found || tag == "" {
		tag = "latest"
	}

	owner, repo, ok := strings.Cut(repoPart, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, goerr.Wrap(ErrInvalidReleaseRef, "failed to parse release", goerr.V("ref", ref))
	}
	if asset == "" {
		return nil, goerr.Wrap(ErrInvalidReleaseRef, "asset name is required", goerr.V("ref", ref))
	}

	return &ReleaseRef{
		Owner: owner,
		Repo:  repo,
		Tag:   tag,
		Asset: asset,
	}, nil
}

// IsLatest reports whether the reference targets the latest release
func (r *ReleaseRef) IsLatest() bool {
	return r.Tag == "latest"
}

// String renders the reference as owner/repo@tag
func (r *ReleaseRef) String() string {
	return r.Owner + "/" + r.Repo + "@" + r.Tag
}
