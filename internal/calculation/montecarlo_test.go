package calculation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/investment-simulator/internal/domain"
)

func testParameters() domain.SimulationParameters {
	return domain.SimulationParameters{
		InitialInvestment:   50000,
		MonthlyContribution: 1000,
		YearlyBonus:         5000,
		Years:               20,
		ExpectedReturn:      0.08,
		Volatility:          0.15,
		NumSimulations:      500,
		Seed:                12345,
	}
}

func TestMonteCarloSimulator(t *testing.T) {
	params := testParameters()

	simulator := NewMonteCarloSimulator()
	result, err := simulator.RunSimulation(context.Background(), params)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	if len(result.FinalBalances) != params.NumSimulations {
		t.Errorf("Expected %d final balances, got %d", params.NumSimulations, len(result.FinalBalances))
	}
	if len(result.Paths) != params.NumSimulations {
		t.Errorf("Expected %d paths, got %d", params.NumSimulations, len(result.Paths))
	}
	if len(result.MeanReturns) != params.NumSimulations {
		t.Errorf("Expected %d mean returns, got %d", params.NumSimulations, len(result.MeanReturns))
	}
	for i, path := range result.Paths {
		if len(path) != params.Years+1 {
			t.Fatalf("Path %d has length %d, expected %d", i, len(path), params.Years+1)
		}
		if path[0] != params.InitialInvestment {
			t.Fatalf("Path %d starts at %v, expected %v", i, path[0], params.InitialInvestment)
		}
		if path.Final() != result.FinalBalances[i] {
			t.Fatalf("Final balance %d not aligned with its path", i)
		}
	}
	if len(result.YearlyPercentiles) != params.Years+1 {
		t.Errorf("Expected %d percentile rows, got %d", params.Years+1, len(result.YearlyPercentiles))
	}
	if result.RunID == "" {
		t.Error("Expected a run id")
	}
	if result.Seed != params.Seed {
		t.Errorf("Expected seed %d, got %d", params.Seed, result.Seed)
	}
}

func TestMonteCarloInvestedColumnIsDeterministic(t *testing.T) {
	params := testParameters()
	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)

	for i, row := range result.YearlyPercentiles {
		assert.Equal(t, i, row.Year)
		want := params.InitialInvestment + (params.MonthlyContribution*12+params.YearlyBonus)*float64(i)
		assert.InDelta(t, want, row.Invested, 1e-9)
	}
}

func TestMonteCarloPercentileOrdering(t *testing.T) {
	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), testParameters())
	require.NoError(t, err)

	for _, row := range result.YearlyPercentiles {
		assert.LessOrEqual(t, row.P5, row.P25, "year %d", row.Year)
		assert.LessOrEqual(t, row.P25, row.Median, "year %d", row.Year)
		assert.LessOrEqual(t, row.Median, row.P75, "year %d", row.Year)
		assert.LessOrEqual(t, row.P75, row.P95, "year %d", row.Year)
	}

	median := Percentile(result.FinalBalances, 50)
	assert.LessOrEqual(t, result.Confidence.Lower, median)
	assert.LessOrEqual(t, median, result.Confidence.Upper)
	assert.InDelta(t, median, result.MedianFinalBalance(), 1e-6)
}

func TestMonteCarloZeroVolatilityCollapses(t *testing.T) {
	params := testParameters()
	params.Volatility = 0
	params.NumSimulations = 25

	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)

	first := result.Paths[0]
	for _, path := range result.Paths[1:] {
		assert.Equal(t, first, path)
	}
	for _, row := range result.YearlyPercentiles {
		v := first[row.Year]
		assert.InDelta(t, v, row.P5, 1e-6)
		assert.InDelta(t, v, row.P25, 1e-6)
		assert.InDelta(t, v, row.Median, 1e-6)
		assert.InDelta(t, v, row.P75, 1e-6)
		assert.InDelta(t, v, row.P95, 1e-6)
	}
	assert.InDelta(t, result.Confidence.Lower, result.Confidence.Upper, 1e-6)
}

func TestMonteCarloGoldenSinglePath(t *testing.T) {
	params := domain.SimulationParameters{
		InitialInvestment:   50000,
		MonthlyContribution: 1000,
		YearlyBonus:         5000,
		Years:               1,
		ExpectedReturn:      0.08,
		Volatility:          0,
		NumSimulations:      1,
		Seed:                1,
	}
	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, result.FinalBalances, 1)
	assert.InDelta(t, 71682.9008683096, result.FinalBalances[0], 1e-6)
	assert.InDelta(t, 8.0, result.MeanReturns[0], 1e-9)
}

func TestMonteCarloSinglePathBoundary(t *testing.T) {
	params := testParameters()
	params.NumSimulations = 1

	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)

	path := result.Paths[0]
	for _, row := range result.YearlyPercentiles {
		v := path[row.Year]
		assert.Equal(t, v, row.P5)
		assert.Equal(t, v, row.P25)
		assert.Equal(t, v, row.Median)
		assert.Equal(t, v, row.P75)
		assert.Equal(t, v, row.P95)
	}
	assert.Equal(t, path.Final(), result.Confidence.Lower)
	assert.Equal(t, path.Final(), result.Confidence.Upper)
}

func TestMonteCarloRejectsInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SimulationParameters)
	}{
		{"zero years", func(p *domain.SimulationParameters) { p.Years = 0 }},
		{"zero simulations", func(p *domain.SimulationParameters) { p.NumSimulations = 0 }},
		{"negative volatility", func(p *domain.SimulationParameters) { p.Volatility = -0.1 }},
		{"negative initial", func(p *domain.SimulationParameters) { p.InitialInvestment = -1 }},
		{"negative monthly", func(p *domain.SimulationParameters) { p.MonthlyContribution = -1 }},
		{"negative bonus", func(p *domain.SimulationParameters) { p.YearlyBonus = -1 }},
		{"negative workers", func(p *domain.SimulationParameters) { p.Workers = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParameters()
			tt.mutate(&params)
			result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestMonteCarloSeedReproducible(t *testing.T) {
	params := testParameters()
	params.NumSimulations = 50

	a, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	b, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, a.FinalBalances, b.FinalBalances)
	assert.Equal(t, a.YearlyPercentiles, b.YearlyPercentiles)
}

func TestMonteCarloParallelWorkers(t *testing.T) {
	params := testParameters()
	params.NumSimulations = 200
	params.Workers = 4

	a, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	b, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)

	assert.Len(t, a.Paths, 200)
	for _, path := range a.Paths {
		assert.Len(t, path, params.Years+1)
	}
	assert.Equal(t, a.FinalBalances, b.FinalBalances)

	// worker 0 draws from the same stream as a sequential run
	params.Workers = 0
	seq, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, seq.FinalBalances[0], a.FinalBalances[0])
}

func TestMonteCarloUsesSeedFuncWhenUnseeded(t *testing.T) {
	orig := seedFunc
	SetSeedFunc(func() int64 { return 99 })
	defer SetSeedFunc(orig)

	params := testParameters()
	params.Seed = 0
	params.NumSimulations = 10

	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(99), result.Seed)
	assert.Equal(t, int64(99), result.Parameters.Seed)
}

func TestMonteCarloCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMonteCarloSimulator().RunSimulation(ctx, testParameters())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestMonteCarloRecordsDuration(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	SetNowFunc(func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * 250 * time.Millisecond)
	})
	defer SetNowFunc(time.Now)

	origID := runIDFunc
	runIDFunc = func() string { return "fixed-run" }
	defer func() { runIDFunc = origID }()

	params := testParameters()
	params.NumSimulations = 5
	result, err := NewMonteCarloSimulator().RunSimulation(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, result.Duration)
	assert.Equal(t, "fixed-run", result.RunID)
}
