package harness

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden runs the scenario at path and compares the combined
// output against testdata/golden/<name>.golden. Regenerate with
// `go test -update`.
func RunWithGolden(t *testing.T, scenarioPath string) {
	t.Helper()

	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	result, err := Run(scenario, filepath.Dir(scenarioPath))
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, []byte(result.Combined()))
}
