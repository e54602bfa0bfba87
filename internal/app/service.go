package app

import (
	"time"

	"monorel/internal/adapters"
	"monorel/internal/ports"
)

// Service wires the ports together. The ledger and plan writer are
// constructed per call because their location comes from the request;
// the factories are fields so tests can substitute fakes.
type Service struct {
	Workspace ports.WorkspacePort
	Identity  ports.IdentityPort
	Branch    ports.BranchPort
	Ledger    func(root string) ports.LedgerPort
	PlanOut   func(dir string) ports.PlanWriterPort
	Clock     func() time.Time
}

func NewService() Service {
	return Service{
		Workspace: adapters.NewWorkspaceScanAdapter(),
		Identity:  adapters.NewUUIDIdentityAdapter(),
		Branch:    adapters.NewGitBranchAdapter(),
		Ledger: func(root string) ports.LedgerPort {
			return adapters.NewLedgerFileAdapter(root)
		},
		PlanOut: func(dir string) ports.PlanWriterPort {
			return adapters.NewPlanFileAdapter(dir)
		},
		Clock: time.Now,
	}
}
