package output

import (
	"math/rand/v2"

	calc "github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/domain"
)

// SamplePathCount is the number of individual trajectories drawn behind the percentile bands.
const SamplePathCount = 10

// SamplePath is one trajectory picked for display, with its index in the run.
type SamplePath struct {
	Index   int         `json:"index" yaml:"index" msgpack:"index"`
	Balance domain.Path `json:"balance" yaml:"balance" msgpack:"balance"`
}

// Report is the serializable view of a run shared by the structured formatters
// and the HTTP API. It carries the statistics and chart data but not every path.
type Report struct {
	RunID      string                      `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Parameters domain.SimulationParameters `json:"parameters" yaml:"parameters" msgpack:"parameters"`
	Seed       int64                       `json:"seed" yaml:"seed" msgpack:"seed"`
	DurationMS int64                       `json:"duration_ms" yaml:"duration_ms" msgpack:"duration_ms"`

	Summary           domain.Summary               `json:"summary" yaml:"summary" msgpack:"summary"`
	YearlyPercentiles domain.YearlyPercentileTable `json:"yearly_percentiles" yaml:"yearly_percentiles" msgpack:"yearly_percentiles"`

	FinalBalanceHistogram []domain.HistogramBin `json:"final_balance_histogram" yaml:"final_balance_histogram" msgpack:"final_balance_histogram"`
	MeanReturnHistogram   []domain.HistogramBin `json:"mean_return_histogram" yaml:"mean_return_histogram" msgpack:"mean_return_histogram"`
	SamplePaths           []SamplePath          `json:"sample_paths" yaml:"sample_paths" msgpack:"sample_paths"`

	Assumptions []string `json:"assumptions" yaml:"assumptions" msgpack:"assumptions"`
}

// BuildReport derives the display statistics of a run. Sample paths are drawn
// from a source seeded by the run seed so a report is reproducible.
func BuildReport(result *domain.SimulationResult) *Report {
	rep := &Report{
		RunID:                 result.RunID,
		Parameters:            result.Parameters,
		Seed:                  result.Seed,
		DurationMS:            result.Duration.Milliseconds(),
		Summary:               calc.Summarize(result),
		YearlyPercentiles:     result.YearlyPercentiles,
		FinalBalanceHistogram: calc.Histogram(result.FinalBalances, calc.DefaultHistogramBins),
		MeanReturnHistogram:   calc.Histogram(result.MeanReturns, calc.DefaultHistogramBins),
		Assumptions:           GenerateAssumptions(result.Parameters),
	}

	src := rand.NewPCG(uint64(result.Seed), 0x5eed)
	for _, idx := range calc.SamplePaths(result.Paths, SamplePathCount, src) {
		rep.SamplePaths = append(rep.SamplePaths, SamplePath{Index: idx, Balance: result.Paths[idx]})
	}
	return rep
}
