package calculation

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// SafeWithdrawalRate is the share of the median final balance treated as sustainable yearly spending.
const SafeWithdrawalRate = 0.04

// DefaultHistogramBins matches the resolution of the distribution charts.
const DefaultHistogramBins = 50

// CalculateSafeWithdrawal applies the 4% rule to a median final balance.
func CalculateSafeWithdrawal(medianFinalBalance float64) domain.SafeWithdrawal {
	yearly := medianFinalBalance * SafeWithdrawalRate
	return domain.SafeWithdrawal{
		Rate:    SafeWithdrawalRate,
		Yearly:  yearly,
		Monthly: yearly / 12,
	}
}

// Summarize derives the headline statistics of a run.
func Summarize(result *domain.SimulationResult) domain.Summary {
	last := result.YearlyPercentiles.Last()
	var avgReturn float64
	if len(result.MeanReturns) > 0 {
		avgReturn = stat.Mean(result.MeanReturns, nil)
	}
	return domain.Summary{
		TotalInvested:      result.Parameters.TotalInvested(),
		MedianFinalBalance: last.Median,
		P95FinalBalance:    last.P95,
		P5FinalBalance:     last.P5,
		AverageReturn:      avgReturn,
		Confidence:         result.Confidence,
		SafeWithdrawal:     CalculateSafeWithdrawal(last.Median),
		ProbabilityOfGain:  ProbabilityAbove(result.FinalBalances, result.Parameters.TotalInvested()),
		FinalBalanceStats:  Describe(result.FinalBalances),
		MeanReturnStats:    Describe(result.MeanReturns),
	}
}

// Describe returns mean, sample standard deviation and range of values.
// The standard deviation of a single value is reported as 0.
func Describe(values []float64) domain.DistributionStats {
	if len(values) == 0 {
		return domain.DistributionStats{}
	}
	var variance float64
	if len(values) > 1 {
		// rounding can push a zero variance slightly below zero
		variance = math.Max(stat.Variance(values, nil), 0)
	}
	return domain.DistributionStats{
		Mean:   stat.Mean(values, nil),
		StdDev: math.Sqrt(variance),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// ProbabilityAbove returns the fraction of values strictly greater than threshold.
func ProbabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var n int
	for _, v := range values {
		if v > threshold {
			n++
		}
	}
	return float64(n) / float64(len(values))
}

// Histogram buckets values into bins equal-width bins spanning [min, max].
// Density is normalized so that sum(density*width) == 1. When every value is
// identical a single zero-width bin holding all of them is returned.
// NaN and infinite values are left out.
func Histogram(values []float64, bins int) []domain.HistogramBin {
	if bins < 1 {
		return nil
	}
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	lo, hi := floats.Min(sorted), floats.Max(sorted)
	if lo == hi {
		return []domain.HistogramBin{{Lower: lo, Upper: hi, Count: len(sorted), Density: 1}}
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// the top divider is exclusive
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	total := float64(len(sorted))
	out := make([]domain.HistogramBin, bins)
	for i, c := range counts {
		width := dividers[i+1] - dividers[i]
		out[i] = domain.HistogramBin{
			Lower:   dividers[i],
			Upper:   dividers[i+1],
			Count:   int(c),
			Density: c / (total * width),
		}
	}
	return out
}

// SamplePaths picks k distinct path indices at random, for drawing background
// trajectories. All indices are returned, in order, when k >= len(paths).
func SamplePaths(paths []domain.Path, k int, src rand.Source) []int {
	n := len(paths)
	if k <= 0 || n == 0 {
		return nil
	}
	if k >= n {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	return rand.New(src).Perm(n)[:k]
}
