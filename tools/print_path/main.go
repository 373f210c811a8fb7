package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/domain"
)

// Prints one path with a constant annual return so the recurrence can be checked by hand.
func main() {
	initial := flag.Float64("initial", 50000, "initial investment")
	monthly := flag.Float64("monthly", 1000, "monthly contribution")
	bonus := flag.Float64("bonus", 5000, "yearly bonus")
	years := flag.Int("years", 1, "years")
	ret := flag.Float64("return", 0.08, "constant annual return")
	flag.Parse()

	params := domain.SimulationParameters{
		InitialInvestment:   *initial,
		MonthlyContribution: *monthly,
		YearlyBonus:         *bonus,
		Years:               *years,
		ExpectedReturn:      *ret,
		NumSimulations:      1,
	}
	multipliers := make([]float64, *years)
	for i := range multipliers {
		multipliers[i] = 1 + *ret
	}

	outcome, err := calculation.SimulatePath(params, multipliers)
	if err != nil {
		panic(err)
	}

	fmt.Println("Year  Invested        Balance")
	fmt.Println(strings.Repeat("-", 34))
	for y, b := range outcome.Path {
		fmt.Printf("%-5d %-15.2f %.10f\n", y, params.InvestedAt(y), b)
	}
	fmt.Printf("Mean return: %.4f%%\n", outcome.Summary.MeanReturn)
}
