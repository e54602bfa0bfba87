package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"monorel/internal/types"
)

func samplePlan() types.BumpPlan {
	return types.BumpPlan{
		Branch:      "main",
		Deploy:      []string{"prod"},
		GeneratedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Entries: map[string]types.PlanEntry{
			"@scope/lib": {
				Package:   "@scope/lib",
				ReleaseAs: types.SeverityBump(types.SeverityMinor),
				Origin:    types.PlanOriginDirect,
				From:      "1.2.3",
				To:        "1.3.0",
			},
			"@scope/app": {
				Package:   "@scope/app",
				ReleaseAs: types.SeverityBump(types.SeverityPatch),
				Origin:    types.PlanOriginInherited,
				From:      "4.0.0",
				To:        "4.0.1",
			},
		},
	}
}

func TestWritePlanProducesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	adapter := NewPlanFileAdapter(dir)

	path, err := adapter.WritePlan(samplePlan())
	require.NoError(t, err)
	if diff := cmp.Diff(filepath.Join(dir, "bump-plan.json"), path); diff != "" {
		t.Fatalf("unexpected plan path (-want +got):\n%s", diff)
	}

	_, err = os.Stat(filepath.Join(dir, "bump-plan.yaml"))
	require.NoError(t, err)
}

func TestWritePlanJSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	adapter := NewPlanFileAdapter(dir)
	want := samplePlan()

	path, err := adapter.WritePlan(want)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got types.BumpPlan
	require.NoError(t, json.Unmarshal(data, &got))

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(types.BumpKind{})); diff != "" {
		t.Fatalf("plan did not round-trip (-want +got):\n%s", diff)
	}
}

func TestWritePlanCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	adapter := NewPlanFileAdapter(dir)

	_, err := adapter.WritePlan(samplePlan())
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "bump-plan.json"))
	require.NoError(t, err)
}
