package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/config"
	"github.com/rpgo/investment-simulator/internal/output"
)

func TestOutputGeneration(t *testing.T) {
	params, err := config.NewInputParser().LoadFromFile("../testdata/example_params.yaml")
	require.NoError(t, err)
	params.NumSimulations = 100

	result, err := calculation.NewMonteCarloSimulator().RunSimulation(context.Background(), *params)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, format := range output.AvailableFormatterNames() {
		files, err := output.GenerateReport(result, format, dir)
		require.NoError(t, err, format)
		for _, f := range files {
			info, err := os.Stat(f)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0), format)
			assert.Equal(t, dir, filepath.Dir(f))
		}
	}
}
