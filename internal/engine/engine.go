// Package engine implements merge-base resolution for possibly-shallow
// repositories: it guarantees the common ancestor of a base/head pair is
// locally available, deepening history in bounded increments, and computes
// the minimum fetch depth that would have covered both sides.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"

	"go.uber.org/zap"
)

// DefaultDeepenBy is the history increment requested per deepen attempt.
const DefaultDeepenBy = 100

// ErrNoMergeBase is returned when no common ancestor can be found even
// after fetching the full history from the remote.
var ErrNoMergeBase = errors.New("no merge base found")

// Result is the complete outcome of a run: the resolved pair, their common
// ancestor, and the minimum shallow-clone depth covering both sides.
// All three ids are empty and Depth is 0 when no comparison applied.
type Result struct {
	Base      string `json:"base"`
	Head      string `json:"head"`
	MergeBase string `json:"mergeBase"`
	Depth     int    `json:"depth"`
}

// Engine resolves merge bases against a repository and its remote.
type Engine struct {
	repo     git.Repository
	log      *zap.Logger
	remote   string
	deepenBy int
}

// New creates an Engine. A non-positive deepenBy falls back to
// DefaultDeepenBy.
func New(repo git.Repository, log *zap.Logger, remote string, deepenBy int) *Engine {
	if deepenBy <= 0 {
		deepenBy = DefaultDeepenBy
	}
	return &Engine{repo: repo, log: log, remote: remote, deepenBy: deepenBy}
}

// Determine computes the full Result for a resolved base/head pair. The
// empty sentinel pair short-circuits to a zero Result without touching the
// remote.
func (e *Engine) Determine(ctx context.Context, base, head string) (Result, error) {
	if base == "" && head == "" {
		return Result{}, nil
	}

	mergeBase, err := e.EnsureMergeBase(ctx, base, head)
	if err != nil {
		return Result{}, err
	}

	headDepth, err := e.NecessaryDepth(mergeBase, head)
	if err != nil {
		return Result{}, err
	}

	baseDepth, err := e.NecessaryDepth(mergeBase, base)
	if err != nil {
		return Result{}, err
	}

	depth := headDepth
	if baseDepth > depth {
		depth = baseDepth
	}

	e.log.Info("resolved commit range",
		zap.String("base", git.ShortSha(base)),
		zap.String("head", git.ShortSha(head)),
		zap.String("mergeBase", git.ShortSha(mergeBase)),
		zap.Int("depth", depth))

	return Result{Base: base, Head: head, MergeBase: mergeBase, Depth: depth}, nil
}

// EnsureMergeBase returns the common ancestor of base and head, deepening
// the local history until it is computable. History is extended in fixed
// increments as long as each fetch makes progress; once the locally known
// commit count stops growing, a single unbounded fetch is the last resort
// before the failure becomes fatal.
func (e *Engine) EnsureMergeBase(ctx context.Context, base, head string) (string, error) {
	mergeBase, err := e.repo.MergeBase(base, head)
	if err == nil {
		return mergeBase, nil
	}

	prevCount := e.repo.TotalCommitCount()

	for {
		e.log.Debug("merge base not available, deepening history",
			zap.Int("deepenBy", e.deepenBy),
			zap.Int("knownCommits", prevCount))

		if err := e.repo.DeepenBounded(ctx, e.remote, e.deepenBy, []string{base, head}); err != nil {
			return "", fmt.Errorf("deepening history: %w", err)
		}

		count := e.repo.TotalCommitCount()
		if count <= prevCount {
			break
		}
		prevCount = count

		mergeBase, err = e.repo.MergeBase(base, head)
		if err == nil {
			return mergeBase, nil
		}
	}

	// The remote yielded no further history. Fetch everything, try once
	// more, and give up for good if that still fails.
	e.log.Debug("deepening stalled, fetching full history")
	if err := e.repo.FetchUnbounded(ctx, e.remote); err != nil {
		return "", fmt.Errorf("fetching full history: %w", err)
	}

	mergeBase, err = e.repo.MergeBase(base, head)
	if err != nil {
		return "", fmt.Errorf("%w for %s and %s after full fetch: %v",
			ErrNoMergeBase, git.ShortSha(base), git.ShortSha(head), err)
	}

	return mergeBase, nil
}

// NecessaryDepth returns the shallow-clone depth needed for target's
// history to reach back to ancestor: the number of non-merge commits
// strictly after ancestor, plus one so the ancestor itself stays inside
// the visible range. The result is always at least 1.
func (e *Engine) NecessaryDepth(ancestor, target string) (int, error) {
	count, err := e.repo.CommitCountInRange(ancestor, target)
	if err != nil {
		return 0, fmt.Errorf("computing depth from %s to %s: %w",
			git.ShortSha(ancestor), git.ShortSha(target), err)
	}
	if count < 0 {
		return 0, fmt.Errorf("computing depth from %s to %s: negative commit count %d",
			git.ShortSha(ancestor), git.ShortSha(target), count)
	}

	return count + 1, nil
}
