package core

import "strings"

// CycleError reports a dependency cycle in the workspace graph. Cycle
// holds the package names in traversal order; the first element depends
// (transitively) on the last, which depends back on the first.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(append(append([]string{}, e.Cycle...), e.Cycle[0]), " -> ")
}

// UnknownPackageError reports a change entry referencing a package that
// is absent from the current workspace snapshot. Such entries indicate
// a stale ledger and abort resolution.
type UnknownPackageError struct {
	Package string
}

func (e *UnknownPackageError) Error() string {
	return "unknown package: " + e.Package
}
