package calculation

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/investment-simulator/internal/domain"
)

const monthsPerYear = 12

// SimulatePath runs the balance recurrence for one path.
//
// Each year the annual multiplier is de-annualized linearly, (m-1)/12, rather
// than by a 12th root. Within the year every month adds the contribution and then
// applies the monthly rate; the yearly bonus lands after the twelfth month.
func SimulatePath(params domain.SimulationParameters, multipliers []float64) (domain.PathOutcome, error) {
	if len(multipliers) != params.Years {
		return domain.PathOutcome{}, fmt.Errorf("%w: expected %d return multipliers, got %d",
			domain.ErrInvalidParameter, params.Years, len(multipliers))
	}

	balance := params.InitialInvestment
	path := make(domain.Path, 0, params.Years+1)
	path = append(path, balance)

	for _, multiplier := range multipliers {
		monthlyRate := (multiplier - 1) / monthsPerYear
		for month := 0; month < monthsPerYear; month++ {
			balance += params.MonthlyContribution
			balance *= 1 + monthlyRate
		}
		balance += params.YearlyBonus
		path = append(path, balance)
	}

	var meanReturn float64
	if len(multipliers) > 0 {
		meanReturn = (stat.Mean(multipliers, nil) - 1) * 100
	}

	return domain.PathOutcome{
		FinalBalance: balance,
		Path:         path,
		Summary:      domain.PathSummary{MeanReturn: meanReturn},
	}, nil
}
