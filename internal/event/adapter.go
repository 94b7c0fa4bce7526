package event

import (
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/git"

	"go.uber.org/zap"
)

// BaseAndHead is the pair of names or commit ids under comparison. Both
// fields are either empty (no comparison applicable, e.g. a manual
// trigger) or both set, never mixed.
type BaseAndHead struct {
	Base string
	Head string

	// NeedsResolution is true when Base and Head are ref names that still
	// have to be fetched and resolved to commit ids. Pull request events
	// supply concrete ids directly.
	NeedsResolution bool
}

// IsEmpty reports the sentinel pair used when no comparison applies.
func (p BaseAndHead) IsEmpty() bool {
	return p.Base == "" && p.Head == ""
}

// BaseAndHeadNames derives the initial base/head pair for the given event
// context, before any resolution.
//
// Pull requests compare the payload's declared base sha against the
// checked-out commit. Pushes compare the default branch (or an override)
// against the pushed branch or tag, substituting the pre-push commit when
// the two sides would otherwise coincide. Manual dispatches produce the
// empty sentinel. Every other event kind is an error.
func BaseAndHeadNames(ctx Context, repo git.Repository, log *zap.Logger) (BaseAndHead, error) {
	switch ctx.Kind {
	case PullRequest:
		return pullRequestPair(ctx, repo, log)
	case Push:
		return pushPair(ctx, repo, log)
	case ManualDispatch:
		log.Debug("manual dispatch event, nothing to compare")
		return BaseAndHead{}, nil
	default:
		return BaseAndHead{}, fmt.Errorf("%w: %q", ErrUnsupportedEvent, ctx.Kind)
	}
}

func pullRequestPair(ctx Context, repo git.Repository, log *zap.Logger) (BaseAndHead, error) {
	if ctx.PullRequestBaseSha == "" {
		return BaseAndHead{}, ErrMissingBaseSha
	}

	head, err := repo.CurrentCommit()
	if err != nil {
		return BaseAndHead{}, fmt.Errorf("reading checked-out commit: %w", err)
	}

	log.Debug("pull request pair",
		zap.String("base", git.ShortSha(ctx.PullRequestBaseSha)),
		zap.String("head", git.ShortSha(head)))

	return BaseAndHead{Base: ctx.PullRequestBaseSha, Head: head}, nil
}

func pushPair(ctx Context, repo git.Repository, log *zap.Logger) (BaseAndHead, error) {
	head := ctx.HeadOverride
	if head == "" {
		head = repo.CurrentBranchName()
	}
	if head == "" {
		tag, err := repo.ExactTagAtHead()
		if err != nil {
			if !errors.Is(err, git.ErrNotTagged) {
				return BaseAndHead{}, fmt.Errorf("checking for exact tag: %w", err)
			}
		} else {
			head = tag
		}
	}
	if head == "" {
		return BaseAndHead{}, ErrNoHead
	}

	base := ctx.BaseOverride
	if base == "" {
		base = ctx.DefaultBranch
	}
	if base == "" {
		return BaseAndHead{}, ErrNoDefaultBranch
	}

	// A push that lands directly on the base branch would compare the
	// branch against itself; use the pre-push commit instead.
	if base == head {
		if ctx.Before == "" {
			return BaseAndHead{}, ErrMissingBefore
		}
		log.Debug("base equals head, substituting pre-push commit",
			zap.String("before", git.ShortSha(ctx.Before)))
		base = ctx.Before
	}

	log.Debug("push pair", zap.String("base", base), zap.String("head", head))

	return BaseAndHead{Base: base, Head: head, NeedsResolution: true}, nil
}
