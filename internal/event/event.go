// Package event models the CI event that triggered the run and encodes the
// per-event-kind policy for choosing the initial base and head names. The
// event context is an explicit value constructed once at process start and
// threaded through, never read from ambient process state downstream.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Kind identifies the triggering CI event.
type Kind string

// Supported event kinds. Anything else is rejected.
const (
	PullRequest    Kind = "pull_request"
	Push           Kind = "push"
	ManualDispatch Kind = "workflow_dispatch"
)

// Errors surfaced when the environment cannot supply enough information.
var (
	ErrUnsupportedEvent = errors.New("unsupported event kind")
	ErrMissingBaseSha   = errors.New("pull request payload has no base sha")
	ErrMissingBefore    = errors.New("push payload has no pre-push commit")
	ErrNoDefaultBranch  = errors.New("no default branch configured")
	ErrNoHead           = errors.New("unable to determine head: not on a branch and not exactly tagged")
)

// Context is the CI event context consumed by the adapter. Callers build it
// once (typically via LoadFromEnvironment) and pass it down explicitly.
type Context struct {
	// Kind is the triggering event kind.
	Kind Kind

	// PullRequestBaseSha is the declared base commit of a pull request.
	PullRequestBaseSha string

	// Before is the pre-push commit id from a push payload.
	Before string

	// DefaultBranch is the repository's configured default branch name.
	DefaultBranch string

	// BaseOverride and HeadOverride are optional user-supplied names that
	// take priority over event-derived values.
	BaseOverride string
	HeadOverride string
}

// payload mirrors the subset of the webhook event payload we consume.
type payload struct {
	Before      string `json:"before"`
	PullRequest struct {
		Base struct {
			Sha string `json:"sha"`
		} `json:"base"`
	} `json:"pull_request"`
	Repository struct {
		DefaultBranch string `json:"default_branch"`
	} `json:"repository"`
}

// LoadFromEnvironment builds a Context from the standard CI environment:
// the event name from GITHUB_EVENT_NAME and payload fields from the JSON
// file at GITHUB_EVENT_PATH. Overrides are supplied by the caller (flags).
func LoadFromEnvironment(baseOverride, headOverride string) (Context, error) {
	ctx := Context{
		Kind:         Kind(os.Getenv("GITHUB_EVENT_NAME")),
		BaseOverride: baseOverride,
		HeadOverride: headOverride,
	}

	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return ctx, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Context{}, fmt.Errorf("reading event payload %s: %w", path, err)
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Context{}, fmt.Errorf("parsing event payload %s: %w", path, err)
	}

	ctx.Before = p.Before
	ctx.PullRequestBaseSha = p.PullRequest.Base.Sha
	ctx.DefaultBranch = p.Repository.DefaultBranch

	return ctx, nil
}
