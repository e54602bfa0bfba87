package ports

import "monorel/internal/types"

// WorkspacePort lists the independently versioned packages of a
// workspace root, with dependency names already narrowed to workspace
// members.
type WorkspacePort interface {
	ListPackages(root string) ([]types.WorkspacePackage, error)
}

// BranchPort resolves the branch a change should be recorded against.
// Git stays an opaque collaborator behind this interface.
type BranchPort interface {
	CurrentBranch(root string) (string, error)
}
