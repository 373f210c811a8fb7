package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidParameter is returned when a SimulationParameters field is outside its domain.
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// DefaultVolatility is the annual return standard deviation assumed when none is given.
const DefaultVolatility = 0.15

// SimulationParameters holds the inputs of one Monte Carlo run.
// Monetary amounts are in the caller's currency; rates are decimals (0.08 = 8%).
type SimulationParameters struct {
	InitialInvestment   float64 `yaml:"initial_investment" json:"initial_investment" msgpack:"initial_investment"`
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthly_contribution" msgpack:"monthly_contribution"`
	YearlyBonus         float64 `yaml:"yearly_bonus" json:"yearly_bonus" msgpack:"yearly_bonus"`
	Years               int     `yaml:"years" json:"years" msgpack:"years"`
	ExpectedReturn      float64 `yaml:"expected_return" json:"expected_return" msgpack:"expected_return"`
	Volatility          float64 `yaml:"volatility" json:"volatility" msgpack:"volatility"`
	NumSimulations      int     `yaml:"num_simulations" json:"num_simulations" msgpack:"num_simulations"`

	// Seed fixes the random stream; zero means a fresh seed per run.
	Seed int64 `yaml:"seed,omitempty" json:"seed,omitempty" msgpack:"seed,omitempty"`
	// Workers > 1 spreads paths across that many goroutines, each with its own source.
	Workers int `yaml:"workers,omitempty" json:"workers,omitempty" msgpack:"workers,omitempty"`
}

// AnnualContribution is the deterministic amount added over one simulated year.
func (p SimulationParameters) AnnualContribution() float64 {
	return p.MonthlyContribution*12 + p.YearlyBonus
}

// InvestedAt returns the cumulative amount invested by the end of the given year.
func (p SimulationParameters) InvestedAt(year int) float64 {
	return p.InitialInvestment + p.AnnualContribution()*float64(year)
}

// TotalInvested returns the cumulative amount invested over the whole horizon.
func (p SimulationParameters) TotalInvested() float64 {
	return p.InvestedAt(p.Years)
}

// Path is one simulated trajectory of year-end balances; index 0 is the initial investment.
type Path []float64

// Final returns the balance at the end of the horizon.
func (p Path) Final() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1]
}

// PathSummary holds the per-path scalar derived alongside a Path.
type PathSummary struct {
	// MeanReturn is the average realized annual return, as a percentage.
	MeanReturn float64 `json:"mean_return" msgpack:"mean_return"`
}

// PathOutcome is everything a single path simulation produces.
type PathOutcome struct {
	FinalBalance float64
	Path         Path
	Summary      PathSummary
}

// YearlyPercentiles is one row of the yearly percentile table.
type YearlyPercentiles struct {
	Year     int     `json:"year" yaml:"year" msgpack:"year"`
	P5       float64 `json:"p5" yaml:"p5" msgpack:"p5"`
	P25      float64 `json:"p25" yaml:"p25" msgpack:"p25"`
	Median   float64 `json:"median" yaml:"median" msgpack:"median"`
	P75      float64 `json:"p75" yaml:"p75" msgpack:"p75"`
	P95      float64 `json:"p95" yaml:"p95" msgpack:"p95"`
	Invested float64 `json:"invested" yaml:"invested" msgpack:"invested"`
}

// YearlyPercentileTable has one row per year 0..horizon, in year order.
type YearlyPercentileTable []YearlyPercentiles

// Last returns the final-year row, or the zero row for an empty table.
func (t YearlyPercentileTable) Last() YearlyPercentiles {
	if len(t) == 0 {
		return YearlyPercentiles{}
	}
	return t[len(t)-1]
}

// ConfidenceInterval bounds the final balance between the 2.5th and 97.5th percentiles.
type ConfidenceInterval struct {
	Lower float64 `json:"lower" yaml:"lower" msgpack:"lower"`
	Upper float64 `json:"upper" yaml:"upper" msgpack:"upper"`
}

// SimulationResult is the read-only output of one Monte Carlo run.
type SimulationResult struct {
	RunID      string               `json:"run_id" yaml:"run_id" msgpack:"run_id"`
	Parameters SimulationParameters `json:"parameters" yaml:"parameters" msgpack:"parameters"`
	Seed       int64                `json:"seed" yaml:"seed" msgpack:"seed"`
	Duration   time.Duration        `json:"duration" yaml:"duration" msgpack:"duration"`

	Paths             []Path                `json:"paths" yaml:"paths" msgpack:"paths"`
	FinalBalances     []float64             `json:"final_balances" yaml:"final_balances" msgpack:"final_balances"`
	MeanReturns       []float64             `json:"mean_returns" yaml:"mean_returns" msgpack:"mean_returns"`
	YearlyPercentiles YearlyPercentileTable `json:"yearly_percentiles" yaml:"yearly_percentiles" msgpack:"yearly_percentiles"`
	Confidence        ConfidenceInterval    `json:"confidence" yaml:"confidence" msgpack:"confidence"`
}

// MedianFinalBalance is the median of the last percentile row.
func (r *SimulationResult) MedianFinalBalance() float64 {
	return r.YearlyPercentiles.Last().Median
}

// SafeWithdrawal is the spending estimate derived from the median final balance.
type SafeWithdrawal struct {
	Rate    float64 `json:"rate" yaml:"rate" msgpack:"rate"`
	Yearly  float64 `json:"yearly" yaml:"yearly" msgpack:"yearly"`
	Monthly float64 `json:"monthly" yaml:"monthly" msgpack:"monthly"`
}

// Summary collects the headline statistics shown alongside a run.
type Summary struct {
	TotalInvested      float64            `json:"total_invested" yaml:"total_invested" msgpack:"total_invested"`
	MedianFinalBalance float64            `json:"median_final_balance" yaml:"median_final_balance" msgpack:"median_final_balance"`
	P95FinalBalance    float64            `json:"p95_final_balance" yaml:"p95_final_balance" msgpack:"p95_final_balance"`
	P5FinalBalance     float64            `json:"p5_final_balance" yaml:"p5_final_balance" msgpack:"p5_final_balance"`
	AverageReturn      float64            `json:"average_return" yaml:"average_return" msgpack:"average_return"`
	Confidence         ConfidenceInterval `json:"confidence" yaml:"confidence" msgpack:"confidence"`
	SafeWithdrawal     SafeWithdrawal     `json:"safe_withdrawal" yaml:"safe_withdrawal" msgpack:"safe_withdrawal"`

	// ProbabilityOfGain is the share of paths that end above TotalInvested.
	ProbabilityOfGain float64           `json:"probability_of_gain" yaml:"probability_of_gain" msgpack:"probability_of_gain"`
	FinalBalanceStats DistributionStats `json:"final_balance_stats" yaml:"final_balance_stats" msgpack:"final_balance_stats"`
	MeanReturnStats   DistributionStats `json:"mean_return_stats" yaml:"mean_return_stats" msgpack:"mean_return_stats"`
}

// DistributionStats describes the spread of a per-path quantity.
type DistributionStats struct {
	Mean   float64 `json:"mean" yaml:"mean" msgpack:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev" msgpack:"std_dev"`
	Min    float64 `json:"min" yaml:"min" msgpack:"min"`
	Max    float64 `json:"max" yaml:"max" msgpack:"max"`
}

// HistogramBin is one equal-width bucket of a distribution.
type HistogramBin struct {
	Lower   float64 `json:"lower" msgpack:"lower"`
	Upper   float64 `json:"upper" msgpack:"upper"`
	Count   int     `json:"count" msgpack:"count"`
	Density float64 `json:"density" msgpack:"density"`
}

// Validate rejects parameters outside their declared domain before any work starts.
func (p SimulationParameters) Validate() error {
	money := []struct {
		name  string
		value float64
	}{
		{"initial investment", p.InitialInvestment},
		{"monthly contribution", p.MonthlyContribution},
		{"yearly bonus", p.YearlyBonus},
	}
	for _, m := range money {
		if m.value < 0 || math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return fmt.Errorf("%w: %s must be a non-negative amount, got %v", ErrInvalidParameter, m.name, m.value)
		}
	}
	if p.Years < 1 {
		return fmt.Errorf("%w: years must be at least 1, got %d", ErrInvalidParameter, p.Years)
	}
	if p.NumSimulations < 1 {
		return fmt.Errorf("%w: number of simulations must be at least 1, got %d", ErrInvalidParameter, p.NumSimulations)
	}
	if math.IsNaN(p.ExpectedReturn) || math.IsInf(p.ExpectedReturn, 0) {
		return fmt.Errorf("%w: expected return must be finite", ErrInvalidParameter)
	}
	if p.Volatility < 0 || math.IsNaN(p.Volatility) || math.IsInf(p.Volatility, 0) {
		return fmt.Errorf("%w: volatility cannot be negative, got %v", ErrInvalidParameter, p.Volatility)
	}
	if p.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidParameter, p.Workers)
	}
	return nil
}
