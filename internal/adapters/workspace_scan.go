package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"monorel/internal/ports"
	"monorel/internal/types"
)

// WorkspaceScanAdapter discovers workspace packages by walking the root
// for package.json manifests. Only names and declared dependency names
// are read; dependency names are narrowed to workspace members so
// external dependencies never become graph nodes.
type WorkspaceScanAdapter struct{}

func NewWorkspaceScanAdapter() WorkspaceScanAdapter {
	return WorkspaceScanAdapter{}
}

type packageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (a WorkspaceScanAdapter) ListPackages(root string) ([]types.WorkspacePackage, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	rootManifest := filepath.Join(root, "package.json")

	type scanned struct {
		manifest packageManifest
		path     string
	}
	var found []scanned
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipScanDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(path) != "package.json" {
			return nil
		}
		// The root manifest describes the workspace itself, not a package.
		if path == rootManifest {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var manifest packageManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse package manifest: " + path).
				WithCause(err)
		}
		if manifest.Name == "" {
			return nil
		}
		found = append(found, scanned{manifest: manifest, path: path})
		return nil
	})
	if err != nil {
		var builder *errbuilder.ErrBuilder
		if errors.As(err, &builder) {
			return nil, err
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}

	members := make(map[string]struct{}, len(found))
	for _, entry := range found {
		members[entry.manifest.Name] = struct{}{}
	}

	packages := make([]types.WorkspacePackage, 0, len(found))
	for _, entry := range found {
		var internal []string
		for dep := range entry.manifest.Dependencies {
			if _, ok := members[dep]; ok && dep != entry.manifest.Name {
				internal = append(internal, dep)
			}
		}
		for dep := range entry.manifest.DevDependencies {
			if _, ok := members[dep]; ok && dep != entry.manifest.Name {
				internal = append(internal, dep)
			}
		}
		sort.Strings(internal)
		internal = dedupeSorted(internal)
		packages = append(packages, types.WorkspacePackage{
			Name:                 entry.manifest.Name,
			Version:              entry.manifest.Version,
			InternalDependencies: internal,
		})
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})
	return packages, nil
}

func shouldSkipScanDir(name string) bool {
	switch name {
	case "node_modules", ".git", "dist", "build", "coverage", "out":
		return true
	default:
		return false
	}
}

func dedupeSorted(values []string) []string {
	var out []string
	for i, value := range values {
		if i > 0 && values[i-1] == value {
			continue
		}
		out = append(out, value)
	}
	return out
}

var _ ports.WorkspacePort = WorkspaceScanAdapter{}
