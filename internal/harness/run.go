package harness

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cktools/tileinspect/internal/diagram"
	"github.com/cktools/tileinspect/internal/extract"
	"github.com/cktools/tileinspect/internal/fixture"
	"github.com/cktools/tileinspect/internal/render"
	"github.com/cktools/tileinspect/internal/value"
)

// DefaultDiagramTitle matches the title the diagram command uses when
// none is given.
const DefaultDiagramTitle = "Tensor Transform Flow"

// Result holds the per-step outputs of one scenario run.
type Result struct {
	Outputs []string
}

// Combined joins step outputs with blank lines, the form golden files
// store.
func (r *Result) Combined() string {
	return strings.Join(r.Outputs, "\n\n")
}

// Run loads the scenario's fixture and executes each step through the
// default dispatch table.
func Run(scenario *Scenario, baseDir string) (*Result, error) {
	v, err := fixture.Load(filepath.Join(baseDir, scenario.Fixture))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{}
	for i, step := range scenario.Steps {
		switch step.Op {
		case OpPrint:
			result.Outputs = append(result.Outputs, render.Default().Render(v))
		case OpDiagram:
			out, err := diagramOutput(v, step.Title)
			if err != nil {
				return nil, fmt.Errorf("scenario %s, step %d: %w", scenario.Name, i, err)
			}
			result.Outputs = append(result.Outputs, out)
		default:
			return nil, fmt.Errorf("scenario %s, step %d: unknown op %q", scenario.Name, i, step.Op)
		}
	}
	return result, nil
}

func diagramOutput(v value.Value, title string) (string, error) {
	if title == "" {
		title = DefaultDiagramTitle
	}
	d, err := extract.Chain(v)
	if err != nil {
		return "", err
	}
	return diagram.Build(d, title).Mermaid(), nil
}
