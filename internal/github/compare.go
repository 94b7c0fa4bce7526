package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/engine"

	gh "github.com/google/go-github/v68/github"
)

// RangeResolver computes a commit range through the GitHub compare API.
// The API always has full history available, so no deepening is involved;
// the reported depth has the same meaning as in the local engine.
type RangeResolver struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewRangeResolver creates a RangeResolver for the given repository.
func NewRangeResolver(client *gh.Client, owner, repo string) *RangeResolver {
	return &RangeResolver{client: client, owner: owner, repo: repo}
}

// Resolve determines the base/head commit ids, their merge base, and the
// minimum fetch depth covering both sides. base and head may be branch
// names, tag names, or commit ids.
func (r *RangeResolver) Resolve(ctx context.Context, base, head string) (engine.Result, error) {
	baseSha, err := r.resolveRef(ctx, base)
	if err != nil {
		return engine.Result{}, fmt.Errorf("resolving base %q: %w", base, err)
	}

	headSha, err := r.resolveRef(ctx, head)
	if err != nil {
		return engine.Result{}, fmt.Errorf("resolving head %q: %w", head, err)
	}

	mergeBase, headCount, err := r.compare(ctx, baseSha, headSha)
	if err != nil {
		return engine.Result{}, fmt.Errorf("comparing %s...%s: %w", base, head, err)
	}

	// The inverse comparison yields the base-side commits past the merge
	// base. Its merge base is the same commit.
	_, baseCount, err := r.compare(ctx, headSha, baseSha)
	if err != nil {
		return engine.Result{}, fmt.Errorf("comparing %s...%s: %w", head, base, err)
	}

	depth := headCount + 1
	if baseCount+1 > depth {
		depth = baseCount + 1
	}

	return engine.Result{
		Base:      baseSha,
		Head:      headSha,
		MergeBase: mergeBase,
		Depth:     depth,
	}, nil
}

// resolveRef resolves a branch, tag, or commit id to a commit sha.
func (r *RangeResolver) resolveRef(ctx context.Context, ref string) (string, error) {
	commit, _, err := r.client.Repositories.GetCommit(ctx, r.owner, r.repo, ref, nil)
	if err != nil {
		return "", err
	}
	sha := commit.GetSHA()
	if sha == "" {
		return "", errors.New("commit has no sha")
	}
	return sha, nil
}

// compare runs the compare API for base...head and returns the merge base
// sha and the number of non-merge commits on the head side.
func (r *RangeResolver) compare(ctx context.Context, base, head string) (string, int, error) {
	opts := &gh.ListOptions{PerPage: 100}

	mergeBase := ""
	count := 0
	for {
		cmp, resp, err := r.client.Repositories.CompareCommits(ctx, r.owner, r.repo, base, head, opts)
		if err != nil {
			return "", 0, err
		}

		if mergeBase == "" {
			mergeBase = cmp.GetMergeBaseCommit().GetSHA()
		}
		for _, c := range cmp.Commits {
			if len(c.Parents) > 1 {
				continue
			}
			count++
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if mergeBase == "" {
		return "", 0, errors.New("comparison has no merge base")
	}

	return mergeBase, count, nil
}
