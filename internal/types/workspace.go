package types

import "time"

// WorkspacePackage is one independently versioned package in the
// workspace snapshot, as supplied by the workspace inspection step.
// InternalDependencies only lists names that exist in the same
// workspace; anything external is already filtered out.
type WorkspacePackage struct {
	Name                 string   `json:"name"`
	Version              string   `json:"version,omitempty"`
	InternalDependencies []string `json:"internalDependencies,omitempty"`
}

// PlanEntry is the resolved decision for one package. Identity is set
// only for channel bumps and is shared by every entry on the same
// channel within one resolution run. From/To are filled in when the
// workspace snapshot carries a current version.
type PlanEntry struct {
	Package   string     `json:"package" yaml:"package"`
	ReleaseAs BumpKind   `json:"releaseAs" yaml:"releaseAs"`
	Origin    PlanOrigin `json:"origin" yaml:"origin"`
	Identity  string     `json:"identity,omitempty" yaml:"identity,omitempty"`
	From      string     `json:"from,omitempty" yaml:"from,omitempty"`
	To        string     `json:"to,omitempty" yaml:"to,omitempty"`
}

// BumpPlan is the fully resolved, per-package version-change decision
// for one branch, ready for the external apply step.
type BumpPlan struct {
	Branch      string               `json:"branch,omitempty" yaml:"branch,omitempty"`
	Deploy      []string             `json:"deploy,omitempty" yaml:"deploy,omitempty"`
	GeneratedAt time.Time            `json:"generatedAt,omitempty" yaml:"generatedAt,omitempty"`
	Entries     map[string]PlanEntry `json:"entries" yaml:"entries"`
}
