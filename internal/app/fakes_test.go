package app

import (
	"errors"
	"fmt"
	"time"

	"monorel/internal/ports"
	"monorel/internal/types"
)

var errBranchUnavailable = errors.New("not a git repository")

// memoryLedger is an in-memory LedgerPort so service tests never touch
// the filesystem.
type memoryLedger struct {
	doc   types.LedgerDocument
	found bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{doc: types.LedgerDocument{Changes: types.ChangesData{}}}
}

func (m *memoryLedger) Initialize(message string) (types.LedgerDocument, error) {
	if m.found {
		return m.doc, nil
	}
	if message == "" {
		message = "chore(release): release new version"
	}
	m.doc = types.LedgerDocument{Message: message, Changes: types.ChangesData{}}
	m.found = true
	return m.doc, nil
}

func (m *memoryLedger) AddChange(change types.Change, deploy []string, branch string) (bool, error) {
	set := m.doc.Changes[branch]
	for _, existing := range set.Pkgs {
		if existing.Equal(change) {
			return false, nil
		}
	}
	set.Pkgs = append(set.Pkgs, change)
	set.Deploy = append(set.Deploy, deploy...)
	m.doc.Changes[branch] = set
	m.found = true
	return true, nil
}

func (m *memoryLedger) RemoveChange(branch string) (bool, error) {
	if _, ok := m.doc.Changes[branch]; !ok {
		return false, nil
	}
	delete(m.doc.Changes, branch)
	return true, nil
}

func (m *memoryLedger) ChangeExists(branch string, pkg string) (bool, error) {
	set, ok := m.doc.Changes[branch]
	if !ok {
		return false, nil
	}
	for _, change := range set.Pkgs {
		if change.Package == pkg {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLedger) Changes() (types.ChangesData, error) {
	return m.doc.Changes, nil
}

func (m *memoryLedger) Snapshot() (types.LedgerDocument, bool, error) {
	return m.doc, m.found, nil
}

func (m *memoryLedger) ChangesByBranch(branch string) (types.BranchChangeSet, bool, error) {
	set, ok := m.doc.Changes[branch]
	return set, ok, nil
}

func (m *memoryLedger) ChangeByPackage(pkg string, branch string) (types.Change, bool, error) {
	set, ok := m.doc.Changes[branch]
	if !ok {
		return types.Change{}, false, nil
	}
	for _, change := range set.Pkgs {
		if change.Package == pkg {
			return change, true, nil
		}
	}
	return types.Change{}, false, nil
}

type staticWorkspace struct {
	packages []types.WorkspacePackage
}

func (s staticWorkspace) ListPackages(string) ([]types.WorkspacePackage, error) {
	return s.packages, nil
}

type staticBranch struct {
	branch string
	err    error
}

func (s staticBranch) CurrentBranch(string) (string, error) {
	return s.branch, s.err
}

type countingIdentity struct {
	calls int
}

func (c *countingIdentity) Next(types.Channel) (string, error) {
	c.calls++
	return fmt.Sprintf("fake%08d", c.calls), nil
}

type capturingPlanWriter struct {
	plan    types.BumpPlan
	written bool
}

func (c *capturingPlanWriter) WritePlan(plan types.BumpPlan) (string, error) {
	c.plan = plan
	c.written = true
	return "out/bump-plan.json", nil
}

// testService wires the fakes into a Service with a fixed clock.
func testService(ledger *memoryLedger, workspace staticWorkspace, branch staticBranch, identity *countingIdentity, writer *capturingPlanWriter) Service {
	return Service{
		Workspace: workspace,
		Identity:  identity,
		Branch:    branch,
		Ledger:    func(string) ports.LedgerPort { return ledger },
		PlanOut:   func(string) ports.PlanWriterPort { return writer },
		Clock:     func() time.Time { return time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC) },
	}
}
