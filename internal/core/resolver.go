package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"monorel/internal/policies"
	"monorel/internal/ports"
	"monorel/internal/types"
)

// Resolver turns the direct change intents of one branch into a
// complete bump plan over the workspace graph. It never mutates the
// ledger; removal after apply is the caller's explicit action.
type Resolver struct {
	Identity ports.IdentityPort
	// SyncDeps controls the dependency cascade. When false only direct
	// changes appear in the plan.
	SyncDeps bool
}

func NewResolver(identity ports.IdentityPort) Resolver {
	return Resolver{
		Identity: identity,
		SyncDeps: true,
	}
}

type workingEntry struct {
	kind   types.BumpKind
	origin types.PlanOrigin
}

// Resolve seeds the plan from the direct changes, cascades bumps along
// the dependency graph in reverse topological order, and mints one
// identity per distinct prerelease channel present in the run.
func (r Resolver) Resolve(ctx context.Context, graph *Graph, changes []types.Change) (types.BumpPlan, error) {
	if graph == nil {
		return types.BumpPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a workspace graph")
	}
	if r.Identity == nil {
		return types.BumpPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires an identity port")
	}

	entries := map[string]*workingEntry{}
	for _, change := range changes {
		if change.ReleaseAs.IsZero() {
			return types.BumpPlan{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("change for %s has no bump kind", change.Package))
		}
		if !graph.Has(change.Package) {
			return types.BumpPlan{}, unknownPackageError(change.Package)
		}
		entry, ok := entries[change.Package]
		if !ok {
			entries[change.Package] = &workingEntry{kind: change.ReleaseAs, origin: types.PlanOriginDirect}
			continue
		}
		entry.kind = policies.MergeBumpKind(&entry.kind, change.ReleaseAs)
	}

	order, err := graph.ReverseTopological()
	if err != nil {
		return types.BumpPlan{}, err
	}

	if r.SyncDeps {
		for _, name := range order {
			for _, dep := range graph.DependenciesOf(name) {
				parent, ok := entries[dep]
				if !ok {
					continue
				}
				candidate := cascadeCandidate(parent.kind)
				entry, ok := entries[name]
				if !ok {
					entries[name] = &workingEntry{kind: candidate, origin: types.PlanOriginInherited}
					continue
				}
				entry.kind = policies.MergeBumpKind(&entry.kind, candidate)
			}
		}
	}

	plan := types.BumpPlan{Entries: make(map[string]types.PlanEntry, len(entries))}
	identities := map[types.Channel]string{}
	for _, name := range sortedKeys(entries) {
		entry := entries[name]
		planned := types.PlanEntry{
			Package:   name,
			ReleaseAs: entry.kind,
			Origin:    entry.origin,
		}
		if entry.kind.IsChannel() {
			channel := entry.kind.Channel()
			identity, ok := identities[channel]
			if !ok {
				identity, err = r.Identity.Next(channel)
				if err != nil {
					return types.BumpPlan{}, err
				}
				identities[channel] = identity
			}
			planned.Identity = identity
		}
		plan.Entries[name] = planned
	}
	return plan, nil
}

// cascadeCandidate is the bump a dependent inherits from a bumped
// dependency: patch for any severity bump (a dependency update is the
// minimal necessary step, never the dependency's own severity), and
// the same channel for prerelease bumps so interdependent builds stay
// coherent.
func cascadeCandidate(parent types.BumpKind) types.BumpKind {
	if parent.IsChannel() {
		return types.ChannelBump(parent.Channel())
	}
	return types.SeverityBump(types.SeverityPatch)
}

func sortedKeys(entries map[string]*workingEntry) []string {
	keys := make([]string, 0, len(entries))
	for name := range entries {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

func unknownPackageError(name string) error {
	cause := &UnknownPackageError{Package: name}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(cause.Error()).
		WithCause(cause)
}
