package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/investment-simulator/internal/domain"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	values := []float64{10, 1, 4, 3, 2}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{2.5, 1.1},
		{5, 1.2},
		{25, 2},
		{50, 3},
		{75, 4},
		{97.5, 9.4},
		{100, 10},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Percentile(values, tt.p), 1e-9, "p=%v", tt.p)
	}
	// input order is preserved
	assert.Equal(t, []float64{10, 1, 4, 3, 2}, values)
}

func TestPercentile_Degenerate(t *testing.T) {
	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 42.0, Percentile([]float64{42}, 2.5))
	assert.Equal(t, 42.0, Percentile([]float64{42}, 97.5))
	assert.Equal(t, 5.0, Percentile([]float64{5, 5, 5}, 33))
}

func TestConfidenceLevels(t *testing.T) {
	ci := ConfidenceLevels([]float64{10, 1, 4, 3, 2})
	assert.InDelta(t, 1.1, ci.Lower, 1e-9)
	assert.InDelta(t, 9.4, ci.Upper, 1e-9)
}

func TestYearlyPercentiles_Table(t *testing.T) {
	params := domain.SimulationParameters{InitialInvestment: 100, MonthlyContribution: 10, YearlyBonus: 5, Years: 2}
	paths := []domain.Path{
		{100, 200, 300},
		{100, 100, 100},
		{100, 150, 500},
	}

	table := YearlyPercentiles(paths, params)
	assert.Len(t, table, 3)

	assert.Equal(t, 0, table[0].Year)
	assert.Equal(t, 100.0, table[0].P5)
	assert.Equal(t, 100.0, table[0].P95)

	assert.Equal(t, 150.0, table[1].Median)
	assert.InDelta(t, 105.0, table[1].P5, 1e-9)
	assert.InDelta(t, 195.0, table[1].P95, 1e-9)
	assert.Equal(t, 300.0, table[2].Median)

	for i, row := range table {
		assert.Equal(t, 100+125*float64(i), row.Invested)
	}
}

func TestYearlyPercentiles_Empty(t *testing.T) {
	assert.Empty(t, YearlyPercentiles(nil, domain.SimulationParameters{Years: 3}))
}
