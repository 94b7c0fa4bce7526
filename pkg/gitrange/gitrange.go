// Package gitrange provides a public Go API for resolving the base/head
// commit range of a CI run. It supports local repositories (via go-git),
// deepening shallow history until the merge base is available, and remote
// GitHub repositories (via the compare API).
//
// Basic usage:
//
//	result, err := gitrange.Resolve(gitrange.LocalOptions{
//	    Path: "/path/to/repo",
//	    Event: gitrange.EventContext{
//	        Kind:          "push",
//	        DefaultBranch: "main",
//	        Before:        "0f0f0f...",
//	    },
//	})
//	fmt.Println(result.MergeBase, result.Depth)
package gitrange

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/config"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/engine"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/event"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/output"
	"github.com/MyCarrier-DevOps/go-gitrange/internal/resolve"

	ghprovider "github.com/MyCarrier-DevOps/go-gitrange/internal/github"

	"go.uber.org/zap"
)

// EventContext describes the CI event that triggered the run. It is
// constructed by the caller once and passed in explicitly; the library
// never reads ambient process state.
type EventContext struct {
	// Kind is the event kind: "pull_request", "push", or "workflow_dispatch".
	Kind string

	// PullRequestBaseSha is the declared base commit of a pull request.
	PullRequestBaseSha string

	// Before is the pre-push commit id from a push payload.
	Before string

	// DefaultBranch is the repository's default branch name.
	DefaultBranch string

	// Base and Head optionally override the event-derived names.
	Base string
	Head string
}

// LocalOptions configures range resolution against a local repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Event is the CI event context (required).
	Event EventContext

	// Remote is the remote fetched for history. Defaults to "origin".
	Remote string

	// FetchDepth bounds the initial fetch and sizes each deepen increment.
	// Defaults to 100.
	FetchDepth int

	// Logger is used for progress output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// RemoteOptions configures range resolution via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Base is the base ref. Defaults to the repository's default branch.
	Base string

	// Head is the head ref (required).
	Head string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string
}

// Result is the resolved commit range.
type Result struct {
	// Base, Head, and MergeBase are commit ids, all empty when the event
	// required no comparison (manual dispatch).
	Base      string
	Head      string
	MergeBase string

	// Depth is the minimum shallow-clone depth covering both sides.
	Depth int

	// Variables holds the same values keyed for output writers.
	Variables map[string]string
}

// Resolve determines the commit range for a local repository.
func Resolve(opts LocalOptions) (*Result, error) {
	ctx := context.Background()

	path := opts.Path
	if path == "" {
		path = "."
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	repo, err := git.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	eff := config.NewBuilder().Add(&config.Config{
		Remote:     nonEmpty(opts.Remote),
		FetchDepth: positive(opts.FetchDepth),
	}).Build()

	evCtx := event.Context{
		Kind:               event.Kind(opts.Event.Kind),
		PullRequestBaseSha: opts.Event.PullRequestBaseSha,
		Before:             opts.Event.Before,
		DefaultBranch:      opts.Event.DefaultBranch,
		BaseOverride:       opts.Event.Base,
		HeadOverride:       opts.Event.Head,
	}

	pair, err := event.BaseAndHeadNames(evCtx, repo, log)
	if err != nil {
		return nil, fmt.Errorf("deriving base and head: %w", err)
	}

	base, head := pair.Base, pair.Head
	if pair.NeedsResolution {
		if err := repo.FetchBounded(ctx, eff.Remote, eff.FetchDepth, []string{base, head}); err != nil {
			return nil, err
		}

		resolver := resolve.NewResolver(repo)
		baseRef, err := resolver.Resolve(base)
		if err != nil {
			return nil, err
		}
		headRef, err := resolver.Resolve(head)
		if err != nil {
			return nil, err
		}
		base, head = baseRef.Sha, headRef.Sha
	}

	eng := engine.New(repo, log, eff.Remote, eff.FetchDepth)
	result, err := eng.Determine(ctx, base, head)
	if err != nil {
		return nil, err
	}

	return newResult(result), nil
}

// ResolveRemote determines the commit range via the GitHub API.
func ResolveRemote(opts RemoteOptions) (*Result, error) {
	ctx := context.Background()

	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}
	if opts.Head == "" {
		return nil, fmt.Errorf("head is required")
	}

	client, err := ghprovider.NewClient(ghprovider.ClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	base := opts.Base
	if base == "" {
		repoInfo, _, err := client.Repositories.Get(ctx, opts.Owner, opts.Repo)
		if err != nil {
			return nil, fmt.Errorf("reading repository metadata: %w", err)
		}
		base = repoInfo.GetDefaultBranch()
		if base == "" {
			return nil, fmt.Errorf("repository %s/%s has no default branch", opts.Owner, opts.Repo)
		}
	}

	resolver := ghprovider.NewRangeResolver(client, opts.Owner, opts.Repo)
	result, err := resolver.Resolve(ctx, base, opts.Head)
	if err != nil {
		return nil, err
	}

	return newResult(result), nil
}

func newResult(r engine.Result) *Result {
	return &Result{
		Base:      r.Base,
		Head:      r.Head,
		MergeBase: r.MergeBase,
		Depth:     r.Depth,
		Variables: output.GetVariables(r),
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
