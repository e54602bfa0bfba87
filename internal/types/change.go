package types

// Change is a single directly-requested version intent for one package.
// Immutable once recorded; two changes are duplicates when both package
// and releaseAs match.
type Change struct {
	Package   string   `json:"package"`
	ReleaseAs BumpKind `json:"releaseAs"`
}

func (c Change) Equal(other Change) bool {
	return c.Package == other.Package && c.ReleaseAs == other.ReleaseAs
}

// BranchChangeSet holds the pending intents recorded against one branch.
// Pkgs keeps insertion order; the resolver's channel tie-break depends
// on it. Deploy is a free-form label set passed through to the plan.
type BranchChangeSet struct {
	Deploy []string `json:"deploy"`
	Pkgs   []Change `json:"pkgs"`
}

// ChangesData maps branch names to their pending change sets.
type ChangesData map[string]BranchChangeSet

// LedgerDocument is the persisted shape of the change ledger, one per
// workspace root (.changes.json).
type LedgerDocument struct {
	Message string      `json:"message,omitempty"`
	Changes ChangesData `json:"changes"`
}
