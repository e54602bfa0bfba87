package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"monorel/internal/types"
)

type sequenceIdentity struct {
	calls int
}

func (s *sequenceIdentity) Next(_ types.Channel) (string, error) {
	s.calls++
	return fmt.Sprintf("id-%03d", s.calls), nil
}

func chainGraph(t *testing.T) *Graph {
	t.Helper()
	// app depends on ui depends on core
	graph, err := BuildGraph([]types.WorkspacePackage{
		{Name: "@scope/app", InternalDependencies: []string{"@scope/ui"}},
		{Name: "@scope/ui", InternalDependencies: []string{"@scope/core"}},
		{Name: "@scope/core"},
	})
	require.NoError(t, err)
	return graph
}

func TestResolveCascadesPatchToDependents(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	plan, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/core", ReleaseAs: types.SeverityBump(types.SeverityMinor)},
	})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)

	if diff := cmp.Diff("minor", plan.Entries["@scope/core"].ReleaseAs.String()); diff != "" {
		t.Fatalf("unexpected core bump (-want +got):\n%s", diff)
	}
	require.Equal(t, types.PlanOriginDirect, plan.Entries["@scope/core"].Origin)

	for _, dependent := range []string{"@scope/ui", "@scope/app"} {
		entry := plan.Entries[dependent]
		if diff := cmp.Diff("patch", entry.ReleaseAs.String()); diff != "" {
			t.Fatalf("unexpected %s bump (-want +got):\n%s", dependent, diff)
		}
		require.Equal(t, types.PlanOriginInherited, entry.Origin)
		require.Empty(t, entry.Identity)
	}
}

func TestResolveChannelCascadeSharesIdentity(t *testing.T) {
	identity := &sequenceIdentity{}
	resolver := NewResolver(identity)
	plan, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/core", ReleaseAs: types.ChannelBump(types.ChannelSnapshot)},
	})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 3)
	require.Equal(t, 1, identity.calls)

	for name, entry := range plan.Entries {
		if diff := cmp.Diff("snapshot", entry.ReleaseAs.String()); diff != "" {
			t.Fatalf("unexpected %s bump (-want +got):\n%s", name, diff)
		}
		if diff := cmp.Diff("id-001", entry.Identity); diff != "" {
			t.Fatalf("unexpected %s identity (-want +got):\n%s", name, diff)
		}
	}
}

func TestResolveDistinctChannelsGetDistinctIdentities(t *testing.T) {
	graph, err := BuildGraph([]types.WorkspacePackage{
		{Name: "@scope/a"},
		{Name: "@scope/b"},
	})
	require.NoError(t, err)

	identity := &sequenceIdentity{}
	resolver := NewResolver(identity)
	plan, err := resolver.Resolve(t.Context(), graph, []types.Change{
		{Package: "@scope/a", ReleaseAs: types.ChannelBump(types.ChannelAlpha)},
		{Package: "@scope/b", ReleaseAs: types.ChannelBump(types.ChannelBeta)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, identity.calls)
	require.NotEqual(t, plan.Entries["@scope/a"].Identity, plan.Entries["@scope/b"].Identity)
}

func TestResolveMergesDuplicateDirectChanges(t *testing.T) {
	graph, err := BuildGraph([]types.WorkspacePackage{{Name: "@scope/a"}})
	require.NoError(t, err)

	resolver := NewResolver(&sequenceIdentity{})
	plan, err := resolver.Resolve(t.Context(), graph, []types.Change{
		{Package: "@scope/a", ReleaseAs: types.SeverityBump(types.SeverityPatch)},
		{Package: "@scope/a", ReleaseAs: types.SeverityBump(types.SeverityMajor)},
	})
	require.NoError(t, err)
	if diff := cmp.Diff("major", plan.Entries["@scope/a"].ReleaseAs.String()); diff != "" {
		t.Fatalf("unexpected merged bump (-want +got):\n%s", diff)
	}
	require.Equal(t, types.PlanOriginDirect, plan.Entries["@scope/a"].Origin)
}

func TestResolveDirectChangeOutranksCascade(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	plan, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/core", ReleaseAs: types.SeverityBump(types.SeverityPatch)},
		{Package: "@scope/ui", ReleaseAs: types.SeverityBump(types.SeverityMajor)},
	})
	require.NoError(t, err)

	entry := plan.Entries["@scope/ui"]
	if diff := cmp.Diff("major", entry.ReleaseAs.String()); diff != "" {
		t.Fatalf("unexpected ui bump (-want +got):\n%s", diff)
	}
	require.Equal(t, types.PlanOriginDirect, entry.Origin)
}

func TestResolveSyncDepsDisabled(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	resolver.SyncDeps = false
	plan, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/core", ReleaseAs: types.SeverityBump(types.SeverityMinor)},
	})
	require.NoError(t, err)
	require.Len(t, plan.Entries, 1)
	require.Contains(t, plan.Entries, "@scope/core")
}

func TestResolveUnknownPackage(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	_, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/ghost", ReleaseAs: types.SeverityBump(types.SeverityPatch)},
	})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	var unknownErr *UnknownPackageError
	require.True(t, errors.As(err, &unknownErr))
	require.Equal(t, "@scope/ghost", unknownErr.Package)
}

func TestResolveRejectsZeroBumpKind(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	_, err := resolver.Resolve(t.Context(), chainGraph(t), []types.Change{
		{Package: "@scope/core"},
	})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestResolveEmptyChanges(t *testing.T) {
	resolver := NewResolver(&sequenceIdentity{})
	plan, err := resolver.Resolve(t.Context(), chainGraph(t), nil)
	require.NoError(t, err)
	require.Empty(t, plan.Entries)
}
