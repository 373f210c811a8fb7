package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	result := buildTestResult(t)
	rep := BuildReport(result)

	assert.Equal(t, "test-run", rep.RunID)
	assert.Equal(t, int64(7), rep.Seed)
	assert.Equal(t, result.YearlyPercentiles, rep.YearlyPercentiles)
	assert.InDelta(t, 67000, rep.Summary.TotalInvested, 1e-9)
	assert.InDelta(t, 71682.9008683096, rep.Summary.MedianFinalBalance, 1e-6)
	assert.InDelta(t, 71682.9008683096*0.04, rep.Summary.SafeWithdrawal.Yearly, 1e-6)

	// identical final balances collapse into one bin
	require.Len(t, rep.FinalBalanceHistogram, 1)
	assert.Equal(t, 20, rep.FinalBalanceHistogram[0].Count)

	require.Len(t, rep.SamplePaths, SamplePathCount)
	seen := map[int]bool{}
	for _, s := range rep.SamplePaths {
		assert.False(t, seen[s.Index], "duplicate sample index %d", s.Index)
		seen[s.Index] = true
		assert.Equal(t, result.Paths[s.Index], s.Balance)
	}
	assert.NotEmpty(t, rep.Assumptions)
}

func TestBuildReportSamplesAreReproducible(t *testing.T) {
	result := buildTestResult(t)
	a := BuildReport(result)
	b := BuildReport(result)
	assert.Equal(t, a.SamplePaths, b.SamplePaths)
}

func TestGenerateAssumptions(t *testing.T) {
	got := GenerateAssumptions(buildTestResult(t).Parameters)
	assert.Contains(t, got, "Expected annual return: 8.0% with 0.0% volatility")
	assert.Contains(t, got, "Contributions: €1,000 monthly plus €5,000 yearly bonus")
	assert.Contains(t, got, "Horizon: 1 years across 20 simulated paths")
	assert.Len(t, got, 3+len(DefaultAssumptions))
}
