package git

import "context"

// Repository provides low-level git operations.
// This is the key abstraction point for testing and backend swapping.
// Methods that contact the remote accept a context; purely local reads
// operate on already-fetched metadata and do not.
type Repository interface {
	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// ResolveLocalRefs returns every local reference whose short name
	// matches the given name. An empty result means no match.
	ResolveLocalRefs(name string) ([]LocalRef, error)

	// CurrentCommit returns the SHA of the currently checked-out commit.
	CurrentCommit() (string, error)

	// CurrentBranchName returns the friendly name of the checked-out
	// branch, or an empty string when HEAD is detached.
	CurrentBranchName() string

	// ExactTagAtHead returns the name of a tag pointing exactly at the
	// current commit. Returns an error when HEAD is not exactly tagged.
	ExactTagAtHead() (string, error)

	// FetchBounded fetches the named refs from the remote, limited to the
	// given history depth.
	FetchBounded(ctx context.Context, remote string, depth int, refs []string) error

	// DeepenBounded extends the locally known history for the named refs
	// by deepenBy additional commits.
	DeepenBounded(ctx context.Context, remote string, deepenBy int, refs []string) error

	// FetchUnbounded fetches the full history from the remote.
	FetchUnbounded(ctx context.Context, remote string) error

	// TotalCommitCount returns the number of commit objects known locally.
	// Counting failures degrade to 0 rather than erroring.
	TotalCommitCount() int

	// MergeBase returns the best common ancestor of two commits. An error
	// means the ancestor is not determinable from local history.
	MergeBase(sha1, sha2 string) (string, error)

	// CommitCountInRange counts the non-merge commits reachable from
	// target but not from ancestor (ancestor excluded, target included).
	CommitCountInRange(ancestor, target string) (int, error)
}
