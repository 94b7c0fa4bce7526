package git

import "context"

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for
// testing. Each method is backed by a function field. If the function field
// is nil, the method returns sensible zero values. Remote-touching calls
// are counted so tests can assert on fetch behavior.
type MockRepository struct {
	WorkingDirectoryFunc   func() string
	ResolveLocalRefsFunc   func(string) ([]LocalRef, error)
	CurrentCommitFunc      func() (string, error)
	CurrentBranchNameFunc  func() string
	ExactTagAtHeadFunc     func() (string, error)
	FetchBoundedFunc       func(context.Context, string, int, []string) error
	DeepenBoundedFunc      func(context.Context, string, int, []string) error
	FetchUnboundedFunc     func(context.Context, string) error
	TotalCommitCountFunc   func() int
	MergeBaseFunc          func(string, string) (string, error)
	CommitCountInRangeFunc func(string, string) (int, error)

	// Call counters for remote operations.
	FetchBoundedCalls   int
	DeepenBoundedCalls  int
	FetchUnboundedCalls int
	ResolveCalls        int
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) ResolveLocalRefs(name string) ([]LocalRef, error) {
	m.ResolveCalls++
	if m.ResolveLocalRefsFunc != nil {
		return m.ResolveLocalRefsFunc(name)
	}
	return nil, nil
}

func (m *MockRepository) CurrentCommit() (string, error) {
	if m.CurrentCommitFunc != nil {
		return m.CurrentCommitFunc()
	}
	return "", nil
}

func (m *MockRepository) CurrentBranchName() string {
	if m.CurrentBranchNameFunc != nil {
		return m.CurrentBranchNameFunc()
	}
	return ""
}

func (m *MockRepository) ExactTagAtHead() (string, error) {
	if m.ExactTagAtHeadFunc != nil {
		return m.ExactTagAtHeadFunc()
	}
	return "", ErrNotTagged
}

func (m *MockRepository) FetchBounded(ctx context.Context, remote string, depth int, refs []string) error {
	m.FetchBoundedCalls++
	if m.FetchBoundedFunc != nil {
		return m.FetchBoundedFunc(ctx, remote, depth, refs)
	}
	return nil
}

func (m *MockRepository) DeepenBounded(ctx context.Context, remote string, deepenBy int, refs []string) error {
	m.DeepenBoundedCalls++
	if m.DeepenBoundedFunc != nil {
		return m.DeepenBoundedFunc(ctx, remote, deepenBy, refs)
	}
	return nil
}

func (m *MockRepository) FetchUnbounded(ctx context.Context, remote string) error {
	m.FetchUnboundedCalls++
	if m.FetchUnboundedFunc != nil {
		return m.FetchUnboundedFunc(ctx, remote)
	}
	return nil
}

func (m *MockRepository) TotalCommitCount() int {
	if m.TotalCommitCountFunc != nil {
		return m.TotalCommitCountFunc()
	}
	return 0
}

func (m *MockRepository) MergeBase(sha1, sha2 string) (string, error) {
	if m.MergeBaseFunc != nil {
		return m.MergeBaseFunc(sha1, sha2)
	}
	return "", nil
}

func (m *MockRepository) CommitCountInRange(ancestor, target string) (int, error) {
	if m.CommitCountInRangeFunc != nil {
		return m.CommitCountInRangeFunc(ancestor, target)
	}
	return 0, nil
}
