package output

import (
	"fmt"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// DefaultAssumptions lists the modeling rules that hold for every run.
var DefaultAssumptions = []string{
	"Annual returns are drawn independently from a normal distribution",
	"Monthly contributions are added at the start of each month, before growth",
	"The yearly bonus is added once at the end of each year",
	"Monthly growth rate is the annual return divided by 12",
	"No taxes, fees or inflation adjustment",
}

// GenerateAssumptions creates the assumptions list from the actual run parameters
func GenerateAssumptions(params domain.SimulationParameters) []string {
	out := []string{
		fmt.Sprintf("Expected annual return: %s with %s volatility", FormatRate(params.ExpectedReturn), FormatRate(params.Volatility)),
		fmt.Sprintf("Contributions: %s monthly plus %s yearly bonus", FormatCurrency(params.MonthlyContribution), FormatCurrency(params.YearlyBonus)),
		fmt.Sprintf("Horizon: %d years across %d simulated paths", params.Years, params.NumSimulations),
	}
	return append(out, DefaultAssumptions...)
}
