package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	calc "github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/domain"
)

// CSVStatisticsExporter writes the aggregate statistics as Metric/Value/Description rows.
type CSVStatisticsExporter struct{}

func (c CSVStatisticsExporter) Name() string { return "csv-summary" }

func (c CSVStatisticsExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := []string{
		"Metric", "Value", "Description",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	s := calc.Summarize(result)
	summaryData := [][]string{
		{"Total Invested", floatToString(s.TotalInvested), "Initial investment plus all contributions"},
		{"Median Final Value", floatToString(s.MedianFinalBalance), "Median balance at the end of the horizon"},
		{"95th Percentile", floatToString(s.P95FinalBalance), "95th percentile of final balance"},
		{"5th Percentile", floatToString(s.P5FinalBalance), "5th percentile of final balance"},
		{"Average Annual Return", fmt.Sprintf("%.2f%%", s.AverageReturn), "Mean of per-path average annual returns"},
		{"CI 2.5th Percentile", floatToString(s.Confidence.Lower), "Lower bound of the 95% confidence interval"},
		{"CI 97.5th Percentile", floatToString(s.Confidence.Upper), "Upper bound of the 95% confidence interval"},
		{"Probability of Gain", fmt.Sprintf("%.2f%%", s.ProbabilityOfGain*100), "Share of paths ending above the amount invested"},
		{"Final Value Std Dev", floatToString(s.FinalBalanceStats.StdDev), "Standard deviation of final balance"},
		{"Final Value Min", floatToString(s.FinalBalanceStats.Min), "Worst final balance"},
		{"Final Value Max", floatToString(s.FinalBalanceStats.Max), "Best final balance"},
		{"Safe Withdrawal Yearly", floatToString(s.SafeWithdrawal.Yearly), "4% of the median final value"},
		{"Safe Withdrawal Monthly", floatToString(s.SafeWithdrawal.Monthly), "Yearly safe withdrawal divided by 12"},
		{"Number of Simulations", strconv.Itoa(result.Parameters.NumSimulations), "Total number of simulated paths"},
		{"Seed", strconv.FormatInt(result.Seed, 10), "Random seed used for the run"},
	}

	for _, row := range summaryData {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write data row: %w", err)
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}
