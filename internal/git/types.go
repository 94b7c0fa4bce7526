// Package git provides the git abstraction layer for commit range
// resolution. It defines a Repository interface exposing the history
// primitives the pipeline needs (ref listing, bounded fetching, history
// deepening, merge-base and range counting), a go-git backed
// implementation, and a configurable mock for testing.
package git

import "strings"

const (
	localBranchPrefix          = "refs/heads/"
	remoteTrackingBranchPrefix = "refs/remotes/"
	tagRefPrefix               = "refs/tags/"

	fullShaLen = 40
)

// IsCommitSha reports whether s has the shape of a full commit id:
// exactly 40 lowercase hexadecimal characters.
func IsCommitSha(s string) bool {
	if len(s) != fullShaLen {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ShortSha returns the first 7 characters of a SHA for log output.
func ShortSha(sha string) string {
	if len(sha) >= 7 {
		return sha[:7]
	}
	return sha
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical string // e.g., "refs/remotes/origin/main"
	Friendly  string // e.g., "origin/main"
	Short     string // e.g., "main" (strips the remote from remote refs)
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	short := canonical

	switch {
	case strings.HasPrefix(canonical, localBranchPrefix):
		friendly = canonical[len(localBranchPrefix):]
		short = friendly
	case strings.HasPrefix(canonical, remoteTrackingBranchPrefix):
		friendly = canonical[len(remoteTrackingBranchPrefix):]
		if idx := strings.Index(friendly, "/"); idx >= 0 {
			short = friendly[idx+1:]
		} else {
			short = friendly
		}
	case strings.HasPrefix(canonical, tagRefPrefix):
		friendly = canonical[len(tagRefPrefix):]
		short = friendly
	}

	return ReferenceName{
		Canonical: canonical,
		Friendly:  friendly,
		Short:     short,
	}
}

// IsBranch returns true if this reference is a local branch.
func (r ReferenceName) IsBranch() bool {
	return strings.HasPrefix(r.Canonical, localBranchPrefix)
}

// IsRemoteBranch returns true if this reference is a remote tracking branch.
func (r ReferenceName) IsRemoteBranch() bool {
	return strings.HasPrefix(r.Canonical, remoteTrackingBranchPrefix)
}

// IsTag returns true if this reference is a tag.
func (r ReferenceName) IsTag() bool {
	return strings.HasPrefix(r.Canonical, tagRefPrefix)
}

// LocalRef is one entry returned when resolving a short ref name against
// local repository metadata.
type LocalRef struct {
	Sha  string
	Name ReferenceName
}
