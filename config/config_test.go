package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/redistrict/config"
	"github.com/katalvlaran/redistrict/grid"
	"github.com/katalvlaran/redistrict/partition"
)

const validDoc = `
graph:
  path: PA_VTD.json
  pop_col: TOT_POP
  assignment_col: "2011_PLA_1"
elections:
  - name: SEN12
    parties:
      Dem: USS12D
      Rep: USS12R
recom:
  epsilon: 0.02
  node_repeats: 2
constraints:
  pop_epsilon: 0.02
  cut_edge_factor: 2
chain:
  total_steps: 1000
  seed: 42
ensemble:
  runs: 8
  parallelism: 4
`

func TestParse_Valid(t *testing.T) {
	cfg, err := config.Parse([]byte(validDoc))
	require.NoError(t, err)

	assert.Equal(t, "PA_VTD.json", cfg.Graph.Path)
	assert.Equal(t, "TOT_POP", cfg.Graph.PopCol)
	assert.Equal(t, "2011_PLA_1", cfg.Graph.AssignmentCol)
	require.Len(t, cfg.Elections, 1)
	assert.Equal(t, "SEN12", cfg.Elections[0].Name)
	assert.Equal(t, "USS12D", cfg.Elections[0].Parties["Dem"])
	assert.Equal(t, 0.02, cfg.ReCom.Epsilon)
	assert.Equal(t, 2, cfg.ReCom.NodeRepeats)
	assert.Equal(t, 2.0, cfg.Constraints.CutEdgeFactor)
	assert.Equal(t, 1000, cfg.Chain.TotalSteps)
	assert.Equal(t, int64(42), cfg.Chain.Seed)
	assert.Equal(t, 8, cfg.Ensemble.Runs)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"not yaml": ":\n  - [",
		"no path": `
graph: {pop_col: P, assignment_col: A}
recom: {epsilon: 0.1, node_repeats: 1}
chain: {total_steps: 10}`,
		"no pop col": `
graph: {path: g.json, assignment_col: A}
recom: {epsilon: 0.1, node_repeats: 1}
chain: {total_steps: 10}`,
		"zero node repeats": `
graph: {path: g.json, pop_col: P, assignment_col: A}
recom: {epsilon: 0.1, node_repeats: 0}
chain: {total_steps: 10}`,
		"negative epsilon": `
graph: {path: g.json, pop_col: P, assignment_col: A}
recom: {epsilon: -0.1, node_repeats: 1}
chain: {total_steps: 10}`,
		"zero steps": `
graph: {path: g.json, pop_col: P, assignment_col: A}
recom: {epsilon: 0.1, node_repeats: 1}
chain: {total_steps: 0}`,
		"unnamed election": `
graph: {path: g.json, pop_col: P, assignment_col: A}
elections: [{parties: {Dem: D}}]
recom: {epsilon: 0.1, node_repeats: 1}
chain: {total_steps: 10}`,
		"partyless election": `
graph: {path: g.json, pop_col: P, assignment_col: A}
elections: [{name: SEN}]
recom: {epsilon: 0.1, node_repeats: 1}
chain: {total_steps: 10}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			assert.ErrorIs(t, err, config.ErrConfig)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Chain.TotalSteps)

	_, err = config.Load(filepath.Join(dir, "absent.yaml"))
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestIdealPopulation(t *testing.T) {
	g, a, err := grid.Lattice(2, 4, grid.WithDistricts(2))
	require.NoError(t, err)
	p, err := partition.New(g, a, partition.NewTally("population", grid.PopCol))
	require.NoError(t, err)

	cfg := &config.Config{}
	ideal, err := cfg.IdealPopulation(p, "population")
	require.NoError(t, err)
	// 8 nodes × pop 10 over 2 districts.
	assert.Equal(t, 40.0, ideal)

	_, err = cfg.IdealPopulation(p, "nope")
	assert.ErrorIs(t, err, partition.ErrUnknownUpdater)
}
