package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"monorel/internal/ports"
	"monorel/internal/types"
)

const (
	planFileName     = "bump-plan.json"
	planYAMLFileName = "bump-plan.yaml"
)

// PlanFileAdapter writes the resolved bump plan into an output
// directory for the external apply step. JSON is the primary artifact;
// a YAML copy is written alongside for pipelines that template on it.
type PlanFileAdapter struct {
	Dir string
}

func NewPlanFileAdapter(dir string) PlanFileAdapter {
	return PlanFileAdapter{Dir: dir}
}

func (a PlanFileAdapter) WritePlan(plan types.BumpPlan) (string, error) {
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create plan output directory").
			WithCause(err)
	}
	path := filepath.Join(a.Dir, planFileName)
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode bump plan").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write bump plan").
			WithCause(err)
	}
	yamlData, err := yaml.Marshal(plan)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode bump plan yaml").
			WithCause(err)
	}
	if err := os.WriteFile(filepath.Join(a.Dir, planYAMLFileName), yamlData, 0644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write bump plan yaml").
			WithCause(err)
	}
	return path, nil
}

var _ ports.PlanWriterPort = PlanFileAdapter{}
