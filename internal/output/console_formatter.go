package output

import (
	"bytes"
	"fmt"

	calc "github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	s := calc.Summarize(result)
	fmt.Fprintln(&buf, "INVESTMENT SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Invested=%s Median=%s P5=%s P95=%s\n",
		FormatCurrency(s.TotalInvested),
		FormatCurrency(s.MedianFinalBalance),
		FormatCurrency(s.P5FinalBalance),
		FormatCurrency(s.P95FinalBalance),
	)
	fmt.Fprintf(&buf, "AvgReturn=%s CI95=[%s, %s]\n",
		FormatPercentage(s.AverageReturn),
		FormatCurrency(s.Confidence.Lower),
		FormatCurrency(s.Confidence.Upper),
	)
	fmt.Fprintf(&buf, "SafeWithdrawal=%s/yr %s/mo\n", FormatCurrency(s.SafeWithdrawal.Yearly), FormatCurrencyCents(s.SafeWithdrawal.Monthly))
	return buf.Bytes(), nil
}
