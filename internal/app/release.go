package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"monorel/internal/core"
	"monorel/internal/types"
)

// Plan resolves the pending changes of one branch into a bump plan and
// writes the plan artifact. The ledger is only read; clearing the
// branch after a successful apply is the caller's explicit action.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	root := strings.TrimSpace(req.Root)
	if root == "" {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = "out"
	}
	branch := s.resolveBranch(ctx, req.Branch, root)
	assert.NotEmpty(ctx, branch, "resolved branch must not be empty")

	set, ok, err := s.Ledger(root).ChangesByBranch(branch)
	if err != nil {
		return PlanResult{}, err
	}
	if !ok || len(set.Pkgs) == 0 {
		log.Ctx(ctx).Info().Str("branch", branch).Msg("no pending changes")
		return PlanResult{
			Branch: branch,
			Plan:   types.BumpPlan{Branch: branch, Entries: map[string]types.PlanEntry{}},
		}, nil
	}

	packages, err := s.Workspace.ListPackages(root)
	if err != nil {
		return PlanResult{}, err
	}
	graph, err := core.BuildGraph(packages)
	if err != nil {
		return PlanResult{}, err
	}
	for _, dropped := range graph.Dropped() {
		log.Ctx(ctx).Warn().
			Str("package", dropped.Package).
			Str("dependency", dropped.Dependency).
			Msg("dependency not in workspace, ignored")
	}

	resolver := core.NewResolver(s.Identity)
	resolver.SyncDeps = req.SyncDeps
	plan, err := resolver.Resolve(ctx, graph, set.Pkgs)
	if err != nil {
		return PlanResult{}, err
	}
	plan.Branch = branch
	plan.Deploy = set.Deploy
	plan.GeneratedAt = s.Clock()

	versions := make(map[string]string, len(packages))
	for _, pkg := range packages {
		versions[pkg.Name] = pkg.Version
	}
	for name, entry := range plan.Entries {
		current := versions[name]
		if current == "" {
			continue
		}
		next, err := core.NextVersion(current, entry.ReleaseAs, entry.Identity)
		if err != nil {
			return PlanResult{}, err
		}
		entry.From = current
		entry.To = next
		plan.Entries[name] = entry
	}

	path, err := s.PlanOut(outputDir).WritePlan(plan)
	if err != nil {
		return PlanResult{}, err
	}
	log.Ctx(ctx).Debug().Str("branch", branch).Int("entries", len(plan.Entries)).Msg("bump plan written")
	return PlanResult{Branch: branch, Plan: plan, OutputPath: path}, nil
}
