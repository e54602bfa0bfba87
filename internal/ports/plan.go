package ports

import "monorel/internal/types"

// PlanWriterPort serializes a resolved bump plan for the external
// apply collaborator.
type PlanWriterPort interface {
	WritePlan(plan types.BumpPlan) (string, error)
}
