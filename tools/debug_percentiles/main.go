package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_percentiles <params-file>")
		return
	}
	p := config.NewInputParser()
	params, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	res, err := calc.NewMonteCarloSimulator().RunSimulation(context.Background(), *params)
	if err != nil {
		panic(err)
	}

	fmt.Printf("run %s seed=%d paths=%d duration=%s\n", res.RunID, res.Seed, len(res.Paths), res.Duration)
	fmt.Printf("%-5s %14s %14s %14s %14s %14s %14s\n", "Year", "Invested", "P5", "P25", "Median", "P75", "P95")
	for _, r := range res.YearlyPercentiles {
		fmt.Printf("%-5d %14.2f %14.2f %14.2f %14.2f %14.2f %14.2f\n", r.Year, r.Invested, r.P5, r.P25, r.Median, r.P75, r.P95)
	}

	// cross-check the last row against a direct percentile of final balances
	last := res.YearlyPercentiles.Last()
	direct := calc.Percentiles(res.FinalBalances, 5, 50, 95)
	fmt.Printf("final row vs direct: P5 %.6f/%.6f  median %.6f/%.6f  P95 %.6f/%.6f\n",
		last.P5, direct[0], last.Median, direct[1], last.P95, direct[2])
	fmt.Printf("CI95: %.2f .. %.2f\n", res.Confidence.Lower, res.Confidence.Upper)
}
