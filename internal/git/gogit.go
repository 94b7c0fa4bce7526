package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	gogitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// infiniteDepth is the depth value the git protocol treats as "everything".
const infiniteDepth = 2147483647

// ErrNotTagged is returned by ExactTagAtHead when no tag points at HEAD.
var ErrNotTagged = errors.New("current commit is not exactly tagged")

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	workDir string

	// fetchDepth accumulates the history depth requested so far, so each
	// deepen call asks the remote for strictly more than the last one.
	fetchDepth int
}

// Open opens a git repository at the given path.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &GoGitRepository{
		repo:    r,
		workDir: wt.Filesystem.Root(),
	}, nil
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) ResolveLocalRefs(name string) ([]LocalRef, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}

	var matches []LocalRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		refName := NewReferenceName(string(ref.Name()))
		if refName.Short != name && refName.Friendly != name {
			return nil
		}
		sha := ref.Hash()
		// Annotated tag refs point at tag objects; peel to the commit.
		if tagObj, tagErr := r.repo.TagObject(sha); tagErr == nil {
			commit, commitErr := tagObj.Commit()
			if commitErr != nil {
				return fmt.Errorf("peeling tag %s: %w", refName.Short, commitErr)
			}
			sha = commit.Hash
		}
		matches = append(matches, LocalRef{
			Sha:  sha.String(),
			Name: refName,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}

	return matches, nil
}

func (r *GoGitRepository) CurrentCommit() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

func (r *GoGitRepository) CurrentBranchName() string {
	ref, err := r.repo.Head()
	if err != nil {
		return ""
	}
	if !ref.Name().IsBranch() {
		return ""
	}
	return NewReferenceName(string(ref.Name())).Short
}

func (r *GoGitRepository) ExactTagAtHead() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	iter, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("listing tags: %w", err)
	}

	var found string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		// Annotated tags need peeling to the commit they point at.
		if tagObj, tagErr := r.repo.TagObject(target); tagErr == nil {
			commit, commitErr := tagObj.Commit()
			if commitErr != nil {
				return nil
			}
			target = commit.Hash
		}
		if target == head.Hash() {
			found = NewReferenceName(string(ref.Name())).Short
			return errStopIteration
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return "", fmt.Errorf("iterating tags: %w", err)
	}

	if found == "" {
		return "", ErrNotTagged
	}
	return found, nil
}

var errStopIteration = errors.New("stop iteration")

func (r *GoGitRepository) FetchBounded(ctx context.Context, remote string, depth int, refs []string) error {
	specs := make([]gogitconfig.RefSpec, 0, len(refs)*2)
	for _, name := range refs {
		if IsCommitSha(name) {
			// Commit ids cannot be fetched by refspec; the surrounding
			// refs window has to cover them.
			continue
		}
		specs = append(specs,
			gogitconfig.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", name, remote, name)),
			gogitconfig.RefSpec(fmt.Sprintf("+refs/tags/%s:refs/tags/%s", name, name)),
		)
	}
	if len(specs) == 0 {
		specs = append(specs, gogitconfig.RefSpec(fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", remote)))
	}

	if depth > r.fetchDepth {
		r.fetchDepth = depth
	}

	err := r.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Depth:      depth,
		Tags:       gogit.NoTags,
	})
	return ignoreBenignFetchErrors(err)
}

func (r *GoGitRepository) DeepenBounded(ctx context.Context, remote string, deepenBy int, _ []string) error {
	// go-git expresses depth as an absolute window from the remote tips,
	// so deepening is a re-fetch with a strictly larger depth.
	base := r.fetchDepth
	if known := r.TotalCommitCount(); known > base {
		base = known
	}
	r.fetchDepth = base + deepenBy

	err := r.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remote,
		RefSpecs: []gogitconfig.RefSpec{
			gogitconfig.RefSpec(fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", remote)),
		},
		Depth: r.fetchDepth,
		Tags:  gogit.AllTags,
	})
	return ignoreBenignFetchErrors(err)
}

func (r *GoGitRepository) FetchUnbounded(ctx context.Context, remote string) error {
	r.fetchDepth = infiniteDepth

	err := r.repo.FetchContext(ctx, &gogit.FetchOptions{
		RemoteName: remote,
		RefSpecs: []gogitconfig.RefSpec{
			gogitconfig.RefSpec(fmt.Sprintf("+refs/heads/*:refs/remotes/%s/*", remote)),
		},
		Depth: infiniteDepth,
		Tags:  gogit.AllTags,
	})
	return ignoreBenignFetchErrors(err)
}

func (r *GoGitRepository) TotalCommitCount() int {
	iter, err := r.repo.CommitObjects()
	if err != nil {
		return 0
	}

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return 0
	}

	return count
}

func (r *GoGitRepository) MergeBase(sha1, sha2 string) (string, error) {
	c1, err := r.repo.CommitObject(plumbing.NewHash(sha1))
	if err != nil {
		return "", fmt.Errorf("loading commit %s: %w", sha1, err)
	}

	c2, err := r.repo.CommitObject(plumbing.NewHash(sha2))
	if err != nil {
		return "", fmt.Errorf("loading commit %s: %w", sha2, err)
	}

	bases, err := c1.MergeBase(c2)
	if err != nil {
		return "", fmt.Errorf("computing merge base of %s and %s: %w", ShortSha(sha1), ShortSha(sha2), err)
	}
	if len(bases) == 0 {
		return "", fmt.Errorf("no common ancestor of %s and %s in local history", ShortSha(sha1), ShortSha(sha2))
	}

	return bases[0].Hash.String(), nil
}

func (r *GoGitRepository) CommitCountInRange(ancestor, target string) (int, error) {
	if ancestor == target {
		return 0, nil
	}

	targetCommit, err := r.repo.CommitObject(plumbing.NewHash(target))
	if err != nil {
		return 0, fmt.Errorf("loading commit %s: %w", target, err)
	}

	ancestorCommit, err := r.repo.CommitObject(plumbing.NewHash(ancestor))
	if err != nil {
		return 0, fmt.Errorf("loading commit %s: %w", ancestor, err)
	}

	// Exclude the ancestor's entire history, so merges that pull in
	// branches forked before the ancestor do not inflate the count.
	var excluded []plumbing.Hash
	err = object.NewCommitPreorderIter(ancestorCommit, nil, nil).ForEach(func(c *object.Commit) error {
		excluded = append(excluded, c.Hash)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking history of %s: %w", ShortSha(ancestor), err)
	}

	iter := object.NewCommitPreorderIter(targetCommit, nil, excluded)

	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() > 1 {
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting commits in %s..%s: %w", ShortSha(ancestor), ShortSha(target), err)
	}

	return count, nil
}

// ignoreBenignFetchErrors filters fetch results that are not real failures:
// an up-to-date remote and refspecs that match nothing (e.g. a ref that
// only exists locally).
func ignoreBenignFetchErrors(err error) error {
	if err == nil || errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return nil
	}
	var noMatch gogit.NoMatchingRefSpecError
	if errors.As(err, &noMatch) {
		return nil
	}
	return fmt.Errorf("fetching from remote: %w", err)
}
