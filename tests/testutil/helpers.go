// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// PackageSpec describes one workspace member for CreateWorkspace.
type PackageSpec struct {
	Name         string
	Version      string
	Dependencies []string
}

// CreateWorkspace lays out a temporary monorepo: a root package.json
// naming the workspace plus one packages/<dir>/package.json per spec.
// It returns the workspace root.
func CreateWorkspace(t *testing.T, specs []PackageSpec) string {
	t.Helper()
	root := t.TempDir()

	rootManifest := map[string]any{
		"name":       "workspace-root",
		"private":    true,
		"workspaces": []string{"packages/*"},
	}
	writeManifest(t, filepath.Join(root, "package.json"), rootManifest)

	for _, spec := range specs {
		deps := map[string]string{}
		for _, dep := range spec.Dependencies {
			deps[dep] = "workspace:*"
		}
		manifest := map[string]any{
			"name":    spec.Name,
			"version": spec.Version,
		}
		if len(deps) > 0 {
			manifest["dependencies"] = deps
		}
		dir := filepath.Join(root, "packages", packageDirName(spec.Name))
		require.NoError(t, os.MkdirAll(dir, 0755))
		writeManifest(t, filepath.Join(dir, "package.json"), manifest)
	}
	return root
}

func writeManifest(t *testing.T, path string, manifest map[string]any) {
	t.Helper()
	data, err := json.MarshalIndent(manifest, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func packageDirName(name string) string {
	name = strings.TrimPrefix(name, "@")
	return strings.ReplaceAll(name, "/", "-")
}
