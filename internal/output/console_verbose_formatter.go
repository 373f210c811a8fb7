package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	calc "github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/domain"
)

// ConsoleVerboseFormatter renders the statistics panel and the yearly percentile table.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	p := result.Parameters

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "MONTE CARLO INVESTMENT SIMULATION")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "Run %s  seed=%d  paths=%d  years=%d\n", result.RunID, result.Seed, p.NumSimulations, p.Years)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(p) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeStatistics(&buf, calc.Summarize(result))
	writePercentileTable(&buf, result.YearlyPercentiles)
	return buf.Bytes(), nil
}

func writeStatistics(w io.Writer, s domain.Summary) {
	fmt.Fprintln(w, "SIMULATION STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", 45))
	fmt.Fprintf(w, "Total Invested:           %s\n", FormatCurrency(s.TotalInvested))
	fmt.Fprintf(w, "Median Final Value:       %s\n", FormatCurrency(s.MedianFinalBalance))
	fmt.Fprintf(w, "95th Percentile:          %s\n", FormatCurrency(s.P95FinalBalance))
	fmt.Fprintf(w, "5th Percentile:           %s\n", FormatCurrency(s.P5FinalBalance))
	fmt.Fprintf(w, "Average Annual Return:    %s\n", FormatPercentage(s.AverageReturn))
	fmt.Fprintf(w, "95%% Confidence Interval:  %s to %s\n", FormatCurrency(s.Confidence.Lower), FormatCurrency(s.Confidence.Upper))
	fmt.Fprintf(w, "Probability of Gain:      %s\n", FormatRate(s.ProbabilityOfGain))
	fmt.Fprintf(w, "Final Value Std Dev:      %s\n", FormatCurrency(s.FinalBalanceStats.StdDev))
	fmt.Fprintf(w, "Final Value Range:        %s to %s\n", FormatCurrency(s.FinalBalanceStats.Min), FormatCurrency(s.FinalBalanceStats.Max))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "SAFE WITHDRAWAL (%s rule)\n", FormatRate(s.SafeWithdrawal.Rate))
	fmt.Fprintln(w, strings.Repeat("=", 45))
	fmt.Fprintf(w, "Yearly:                   %s\n", FormatCurrency(s.SafeWithdrawal.Yearly))
	fmt.Fprintf(w, "Monthly:                  %s\n", FormatCurrencyCents(s.SafeWithdrawal.Monthly))
	fmt.Fprintln(w)
}

func writePercentileTable(w io.Writer, table domain.YearlyPercentileTable) {
	fmt.Fprintln(w, "YEARLY PERCENTILES")
	fmt.Fprintln(w, strings.Repeat("=", 81))
	fmt.Fprintf(w, "%-5s %12s %12s %12s %12s %12s %12s\n", "Year", "Invested", "P5", "P25", "Median", "P75", "P95")
	for _, r := range table {
		fmt.Fprintf(w, "%-5d %12s %12s %12s %12s %12s %12s\n", r.Year,
			FormatCurrency(r.Invested),
			FormatCurrency(r.P5),
			FormatCurrency(r.P25),
			FormatCurrency(r.Median),
			FormatCurrency(r.P75),
			FormatCurrency(r.P95),
		)
	}
}
