package ports

import "monorel/internal/types"

// LedgerPort is the persisted, branch-scoped store of pending change
// intents. Mutating operations are atomic: the read-modify-persist
// sequence is one critical section, and a failed persist leaves the
// previously stored document intact.
type LedgerPort interface {
	// Initialize loads the existing ledger or creates and persists an
	// empty one. Idempotent: an existing ledger is returned unchanged
	// and message is ignored.
	Initialize(message string) (types.LedgerDocument, error)
	// AddChange appends the change under branch unless an entry with
	// the same (package, releaseAs) already exists there. Reports
	// whether anything was added; duplicates are suppressed, not errors.
	AddChange(change types.Change, deploy []string, branch string) (bool, error)
	// RemoveChange deletes the whole branch entry and reports whether
	// anything was removed.
	RemoveChange(branch string) (bool, error)
	// ChangeExists reports whether branch holds a change for exactly
	// the given package. Branch presence alone is never a match.
	ChangeExists(branch string, pkg string) (bool, error)
	// Changes returns a read-only snapshot of every branch.
	Changes() (types.ChangesData, error)
	// Snapshot returns the full persisted document and whether one
	// exists yet.
	Snapshot() (types.LedgerDocument, bool, error)
	// ChangesByBranch returns the change set for one branch.
	ChangesByBranch(branch string) (types.BranchChangeSet, bool, error)
	// ChangeByPackage returns the first change (in insertion order) for
	// pkg under branch.
	ChangeByPackage(pkg string, branch string) (types.Change, bool, error)
}
