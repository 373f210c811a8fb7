package calculation

import (
	"math"
	"sort"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// Percentile levels reported in the yearly table and the confidence interval.
const (
	ConfidenceLowerPercentile = 2.5
	ConfidenceUpperPercentile = 97.5
)

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks: rank h = (n-1)*p/100, result
// x[floor(h)] + (h-floor(h))*(x[ceil(h)]-x[floor(h)]). An empty input yields 0.
// values is not modified.
func Percentile(values []float64, p float64) float64 {
	return Percentiles(values, p)[0]
}

// Percentiles computes several percentiles of values with a single sort.
func Percentiles(values []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(values) == 0 {
		return out
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	for i, p := range ps {
		out[i] = percentileSorted(sorted, p)
	}
	return out
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	p = math.Max(0, math.Min(100, p))
	h := float64(n-1) * p / 100
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// ConfidenceLevels returns the 95% interval (2.5th to 97.5th percentile) of the final balances.
func ConfidenceLevels(finalBalances []float64) domain.ConfidenceInterval {
	bounds := Percentiles(finalBalances, ConfidenceLowerPercentile, ConfidenceUpperPercentile)
	return domain.ConfidenceInterval{Lower: bounds[0], Upper: bounds[1]}
}

// YearlyPercentiles builds the per-year cross-path percentile table.
// All paths must have the same length; the table has one row per index.
func YearlyPercentiles(paths []domain.Path, params domain.SimulationParameters) domain.YearlyPercentileTable {
	if len(paths) == 0 {
		return domain.YearlyPercentileTable{}
	}
	horizon := len(paths[0])
	table := make(domain.YearlyPercentileTable, 0, horizon)
	column := make([]float64, len(paths))
	for year := 0; year < horizon; year++ {
		for i, path := range paths {
			column[i] = path[year]
		}
		ps := Percentiles(column, 5, 25, 50, 75, 95)
		table = append(table, domain.YearlyPercentiles{
			Year:     year,
			P5:       ps[0],
			P25:      ps[1],
			Median:   ps[2],
			P75:      ps[3],
			P95:      ps[4],
			Invested: params.InvestedAt(year),
		})
	}
	return table
}
