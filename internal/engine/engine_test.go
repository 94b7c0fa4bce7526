package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	baseSha = strings.Repeat("a", 40)
	headSha = strings.Repeat("b", 40)
	ancSha  = strings.Repeat("c", 40)
)

var errShallow = errors.New("object not found")

func TestEnsureMergeBase_FirstAttemptSucceeds(t *testing.T) {
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) { return ancSha, nil },
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	mb, err := eng.EnsureMergeBase(context.Background(), baseSha, headSha)
	require.NoError(t, err)
	require.Equal(t, ancSha, mb)

	// The fast path must not touch the remote at all.
	require.Equal(t, 0, repo.DeepenBoundedCalls)
	require.Equal(t, 0, repo.FetchUnboundedCalls)
}

func TestEnsureMergeBase_SucceedsAfterDeepening(t *testing.T) {
	attempts := 0
	count := 50
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) {
			attempts++
			if attempts < 3 {
				return "", errShallow
			}
			return ancSha, nil
		},
		TotalCommitCountFunc: func() int { return count },
		DeepenBoundedFunc: func(ctx context.Context, remote string, by int, refs []string) error {
			count += by // every deepen yields more history
			return nil
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	mb, err := eng.EnsureMergeBase(context.Background(), baseSha, headSha)
	require.NoError(t, err)
	require.Equal(t, ancSha, mb)
	require.Equal(t, 2, repo.DeepenBoundedCalls)
	require.Equal(t, 0, repo.FetchUnboundedCalls)
}

func TestEnsureMergeBase_StalledCount_UnboundedFetchRecovers(t *testing.T) {
	unbounded := false
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) {
			if unbounded {
				return ancSha, nil
			}
			return "", errShallow
		},
		TotalCommitCountFunc: func() int { return 50 }, // never grows
		FetchUnboundedFunc: func(ctx context.Context, remote string) error {
			unbounded = true
			return nil
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	mb, err := eng.EnsureMergeBase(context.Background(), baseSha, headSha)
	require.NoError(t, err)
	require.Equal(t, ancSha, mb)
	require.Equal(t, 1, repo.DeepenBoundedCalls)
	require.Equal(t, 1, repo.FetchUnboundedCalls)
}

func TestEnsureMergeBase_StalledCount_FatalAfterUnboundedFetch(t *testing.T) {
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) {
			return "", errShallow
		},
		TotalCommitCountFunc: func() int { return 50 },
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	_, err := eng.EnsureMergeBase(context.Background(), baseSha, headSha)
	require.ErrorIs(t, err, ErrNoMergeBase)

	// A stalled count allows exactly one unbounded fetch and no further
	// deepening.
	require.Equal(t, 1, repo.DeepenBoundedCalls)
	require.Equal(t, 1, repo.FetchUnboundedCalls)
}

func TestEnsureMergeBase_DeepenError(t *testing.T) {
	netErr := errors.New("connection refused")
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) {
			return "", errShallow
		},
		DeepenBoundedFunc: func(ctx context.Context, remote string, by int, refs []string) error {
			return netErr
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	_, err := eng.EnsureMergeBase(context.Background(), baseSha, headSha)
	require.ErrorIs(t, err, netErr)
}

func TestNecessaryDepth_AlwaysAtLeastOne(t *testing.T) {
	repo := &git.MockRepository{
		CommitCountInRangeFunc: func(ancestor, target string) (int, error) {
			return 0, nil // identical commits
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	depth, err := eng.NecessaryDepth(ancSha, ancSha)
	require.NoError(t, err)
	require.Equal(t, 1, depth)
}

func TestNecessaryDepth_CountPlusOne(t *testing.T) {
	repo := &git.MockRepository{
		CommitCountInRangeFunc: func(ancestor, target string) (int, error) {
			return 41, nil
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	depth, err := eng.NecessaryDepth(ancSha, headSha)
	require.NoError(t, err)
	require.Equal(t, 42, depth)
}

func TestNecessaryDepth_CountErrorIsFatal(t *testing.T) {
	countErr := errors.New("bad range")
	repo := &git.MockRepository{
		CommitCountInRangeFunc: func(ancestor, target string) (int, error) {
			return 0, countErr
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	_, err := eng.NecessaryDepth(ancSha, headSha)
	require.ErrorIs(t, err, countErr)
}

func TestDetermine_DepthIsMaxOfBothSides(t *testing.T) {
	repo := &git.MockRepository{
		MergeBaseFunc: func(a, b string) (string, error) { return ancSha, nil },
		CommitCountInRangeFunc: func(ancestor, target string) (int, error) {
			if target == headSha {
				return 3, nil
			}
			return 10, nil
		},
	}
	eng := New(repo, zap.NewNop(), "origin", 100)

	result, err := eng.Determine(context.Background(), baseSha, headSha)
	require.NoError(t, err)
	require.Equal(t, baseSha, result.Base)
	require.Equal(t, headSha, result.Head)
	require.Equal(t, ancSha, result.MergeBase)
	require.Equal(t, 11, result.Depth) // max(3+1, 10+1)
}

func TestDetermine_EmptySentinel(t *testing.T) {
	repo := &git.MockRepository{}
	eng := New(repo, zap.NewNop(), "origin", 100)

	result, err := eng.Determine(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, Result{}, result)

	require.Equal(t, 0, repo.FetchBoundedCalls)
	require.Equal(t, 0, repo.DeepenBoundedCalls)
	require.Equal(t, 0, repo.FetchUnboundedCalls)
}

func TestNew_DefaultsDeepenBy(t *testing.T) {
	eng := New(&git.MockRepository{}, zap.NewNop(), "origin", 0)
	require.Equal(t, DefaultDeepenBy, eng.deepenBy)
}
