package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"monorel/internal/types"
	"monorel/tests/testutil"
)

func TestListPackagesNarrowsToWorkspaceMembers(t *testing.T) {
	root := testutil.CreateWorkspace(t, []testutil.PackageSpec{
		{Name: "@scope/app", Version: "1.0.0", Dependencies: []string{"@scope/lib", "lodash"}},
		{Name: "@scope/lib", Version: "0.3.1"},
	})

	packages, err := NewWorkspaceScanAdapter().ListPackages(root)
	require.NoError(t, err)

	want := []types.WorkspacePackage{
		{Name: "@scope/app", Version: "1.0.0", InternalDependencies: []string{"@scope/lib"}},
		{Name: "@scope/lib", Version: "0.3.1"},
	}
	if diff := cmp.Diff(want, packages); diff != "" {
		t.Fatalf("unexpected packages (-want +got):\n%s", diff)
	}
}

func TestListPackagesSkipsRootManifest(t *testing.T) {
	root := testutil.CreateWorkspace(t, []testutil.PackageSpec{
		{Name: "@scope/lib", Version: "0.1.0"},
	})

	packages, err := NewWorkspaceScanAdapter().ListPackages(root)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	require.Equal(t, "@scope/lib", packages[0].Name)
}

func TestListPackagesSkipsVendoredDirs(t *testing.T) {
	root := testutil.CreateWorkspace(t, []testutil.PackageSpec{
		{Name: "@scope/lib", Version: "0.1.0"},
	})
	vendored := filepath.Join(root, "node_modules", "left-pad")
	require.NoError(t, os.MkdirAll(vendored, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(vendored, "package.json"), []byte(`{"name":"left-pad","version":"1.3.0"}`), 0644))

	packages, err := NewWorkspaceScanAdapter().ListPackages(root)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	require.Equal(t, "@scope/lib", packages[0].Name)
}

func TestListPackagesIncludesDevDependencies(t *testing.T) {
	root := testutil.CreateWorkspace(t, []testutil.PackageSpec{
		{Name: "@scope/lib", Version: "0.1.0"},
	})
	dir := filepath.Join(root, "packages", "tools")
	require.NoError(t, os.MkdirAll(dir, 0755))
	manifest := `{"name":"@scope/tools","version":"0.2.0","devDependencies":{"@scope/lib":"workspace:*","typescript":"^5"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0644))

	packages, err := NewWorkspaceScanAdapter().ListPackages(root)
	require.NoError(t, err)
	require.Len(t, packages, 2)
	if diff := cmp.Diff([]string{"@scope/lib"}, packages[1].InternalDependencies); diff != "" {
		t.Fatalf("unexpected internal deps (-want +got):\n%s", diff)
	}
}

func TestListPackagesRejectsBrokenManifest(t *testing.T) {
	root := testutil.CreateWorkspace(t, nil)
	dir := filepath.Join(root, "packages", "broken")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{oops"), 0644))

	_, err := NewWorkspaceScanAdapter().ListPackages(root)
	require.Error(t, err)
}
