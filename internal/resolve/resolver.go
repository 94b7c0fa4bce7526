// Package resolve turns human-supplied or event-supplied ref names into
// concrete commit ids using local repository metadata. Callers are
// responsible for fetching before resolving.
package resolve

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"
)

// ErrRefNotFound is returned when a name matches no usable local reference.
var ErrRefNotFound = errors.New("failed to get ref")

// ResolvedRef is the outcome of resolving a ref name: the commit id it
// points at and the canonical reference path that was selected.
type ResolvedRef struct {
	Sha string
	Ref string
}

// Resolver resolves ref names against a repository's local metadata.
type Resolver struct {
	repo git.Repository
}

// NewResolver creates a Resolver backed by the given repository.
func NewResolver(repo git.Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve turns a branch name, tag name, or literal commit id into a
// ResolvedRef. A string that already has the commit-id shape is returned
// as-is without any repository lookup. Otherwise the first matching
// remote-tracking branch or tag wins; local-only branches and other ref
// kinds are not considered.
func (r *Resolver) Resolve(name string) (ResolvedRef, error) {
	if git.IsCommitSha(name) {
		return ResolvedRef{Sha: name, Ref: name}, nil
	}

	refs, err := r.repo.ResolveLocalRefs(name)
	if err != nil {
		return ResolvedRef{}, fmt.Errorf("resolving %q: %w", name, err)
	}

	for _, ref := range refs {
		if ref.Name.IsRemoteBranch() || ref.Name.IsTag() {
			return ResolvedRef{Sha: ref.Sha, Ref: ref.Name.Canonical}, nil
		}
	}

	return ResolvedRef{}, fmt.Errorf("%w: %q", ErrRefNotFound, name)
}
