// Library-level end-to-end tests for the public gitrange package.
package e2e

import (
	"testing"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/event"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/testutil"
	"github.com/MyCarrier-DevOps/go-gitrange/pkg/gitrange"

	"github.com/stretchr/testify/require"
)

func TestLibrary_PullRequest(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial")
	fork := repo.AddCommit("second")

	repo.CreateBranch("feature-1", fork)
	repo.Checkout("feature-1")
	repo.AddCommit("feature work 1")
	head := repo.AddCommit("feature work 2")

	repo.Checkout("master")
	base := repo.AddCommit("third on master")
	repo.Checkout("feature-1")

	result, err := gitrange.Resolve(gitrange.LocalOptions{
		Path: repo.Path(),
		Event: gitrange.EventContext{
			Kind:               string(event.PullRequest),
			PullRequestBaseSha: base,
		},
	})
	require.NoError(t, err)

	require.Equal(t, base, result.Base)
	require.Equal(t, head, result.Head)
	require.Equal(t, fork, result.MergeBase)
	require.Equal(t, 3, result.Depth)

	require.Equal(t, base, result.Variables["Base"])
	require.Equal(t, head, result.Variables["Head"])
	require.Equal(t, fork, result.Variables["MergeBase"])
	require.Equal(t, "3", result.Variables["Depth"])
}

func TestLibrary_PullRequest_MissingBaseSha(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial")

	_, err := gitrange.Resolve(gitrange.LocalOptions{
		Path:  repo.Path(),
		Event: gitrange.EventContext{Kind: string(event.PullRequest)},
	})
	require.ErrorIs(t, err, event.ErrMissingBaseSha)
}

func TestLibrary_ManualDispatch(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial")

	result, err := gitrange.Resolve(gitrange.LocalOptions{
		Path:  repo.Path(),
		Event: gitrange.EventContext{Kind: string(event.ManualDispatch)},
	})
	require.NoError(t, err)

	require.Equal(t, "", result.Base)
	require.Equal(t, "", result.Head)
	require.Equal(t, "", result.MergeBase)
	require.Equal(t, 0, result.Depth)
}

func TestLibrary_UnsupportedEvent(t *testing.T) {
	repo := testutil.NewTestRepo(t)
	repo.AddCommit("initial")

	_, err := gitrange.Resolve(gitrange.LocalOptions{
		Path:  repo.Path(),
		Event: gitrange.EventContext{Kind: "schedule"},
	})
	require.ErrorIs(t, err, event.ErrUnsupportedEvent)
}

func TestLibrary_ResolveRemote_RequiresHead(t *testing.T) {
	_, err := gitrange.ResolveRemote(gitrange.RemoteOptions{
		Owner: "myorg",
		Repo:  "myrepo",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "head is required")
}
