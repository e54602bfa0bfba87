package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"monorel/internal/types"
)

// InitLedger creates the change ledger in the workspace root or loads
// the existing one unchanged.
func (s Service) InitLedger(ctx context.Context, req InitRequest) (InitResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return InitResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	doc, err := s.Ledger(root).Initialize(strings.TrimSpace(req.Message))
	if err != nil {
		return InitResult{}, err
	}
	log.Ctx(ctx).Debug().Str("root", root).Int("branches", len(doc.Changes)).Msg("change ledger ready")
	return InitResult{
		Message:  doc.Message,
		Branches: len(doc.Changes),
	}, nil
}

// AddChange records a direct version intent for one package on a
// branch. A second request with the same package and kind on the same
// branch is suppressed and reported via Added=false.
func (s Service) AddChange(ctx context.Context, req AddChangeRequest) (AddChangeResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return AddChangeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	pkg := strings.TrimSpace(req.Package)
	if pkg == "" {
		return AddChangeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package is required")
	}
	kind, err := types.ParseBumpKind(req.ReleaseAs)
	if err != nil {
		return AddChangeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("release-as must be major, minor, patch, snapshot, alpha, beta, or rc").
			WithCause(err)
	}
	branch := s.resolveBranch(ctx, req.Branch, root)

	added, err := s.Ledger(root).AddChange(types.Change{Package: pkg, ReleaseAs: kind}, req.Deploy, branch)
	if err != nil {
		return AddChangeResult{}, err
	}
	if !added {
		log.Ctx(ctx).Info().Str("package", pkg).Str("branch", branch).Msg("duplicate change ignored")
	}
	return AddChangeResult{Branch: branch, Added: added}, nil
}

// RemoveChange clears every pending intent for a branch. Intended to
// run after a plan has been applied successfully.
func (s Service) RemoveChange(ctx context.Context, req RemoveChangeRequest) (RemoveChangeResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return RemoveChangeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	branch := s.resolveBranch(ctx, req.Branch, root)
	removed, err := s.Ledger(root).RemoveChange(branch)
	if err != nil {
		return RemoveChangeResult{}, err
	}
	log.Ctx(ctx).Debug().Str("branch", branch).Bool("removed", removed).Msg("branch changes removed")
	return RemoveChangeResult{Branch: branch, Removed: removed}, nil
}

// Status returns the ledger snapshot, narrowed to one branch when the
// request names one.
func (s Service) Status(ctx context.Context, req StatusRequest) (StatusResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return StatusResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	ledger := s.Ledger(root)
	doc, _, err := ledger.Snapshot()
	if err != nil {
		return StatusResult{}, err
	}
	if branch := strings.TrimSpace(req.Branch); branch != "" {
		narrowed := types.ChangesData{}
		if set, ok := doc.Changes[branch]; ok {
			narrowed[branch] = set
		}
		return StatusResult{Message: doc.Message, Changes: narrowed}, nil
	}
	return StatusResult{Message: doc.Message, Changes: doc.Changes}, nil
}

// resolveBranch prefers the explicit request value, then the checked
// out git branch, then "main".
func (s Service) resolveBranch(ctx context.Context, requested string, root string) string {
	if branch := strings.TrimSpace(requested); branch != "" {
		return branch
	}
	if s.Branch != nil {
		branch, err := s.Branch.CurrentBranch(root)
		if err == nil && strings.TrimSpace(branch) != "" {
			return strings.TrimSpace(branch)
		}
		if err != nil {
			log.Ctx(ctx).Debug().Err(err).Msg("falling back to default branch")
		}
	}
	return "main"
}
