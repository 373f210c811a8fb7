package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rpgo/investment-simulator/internal/calculation"
	"github.com/rpgo/investment-simulator/internal/config"
	"github.com/rpgo/investment-simulator/internal/domain"
	"github.com/rpgo/investment-simulator/internal/output"
)

func newSimulateCommand(a *app) *cobra.Command {
	var (
		paramsFile string
		format     string
		outputDir  string
		flagParams domain.SimulationParameters
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo simulation and print or write the report",
		Long: "Run a Monte Carlo simulation. Parameters come from --config when given;\n" +
			"individual flags override values from the file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			params := parser.CreateExampleParameters()
			if paramsFile != "" {
				loaded, err := parser.LoadFromFile(paramsFile)
				if err != nil {
					return err
				}
				params = loaded
			}
			applyChangedFlags(cmd.Flags(), params, flagParams)
			if params.Workers == 0 {
				params.Workers = a.settings.Simulation.Workers
			}
			if err := parser.ValidateParameters(params); err != nil {
				return err
			}

			simulator := calculation.NewMonteCarloSimulator()
			simulator.SetLogger(a.log)
			result, err := simulator.RunSimulation(cmd.Context(), *params)
			if err != nil {
				return err
			}

			if outputDir == "" {
				return output.WriteReport(cmd.OutOrStdout(), result, format)
			}
			files, err := output.GenerateReport(result, format, outputDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), "Report written to", f)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&paramsFile, "config", "c", "", "simulation parameter file (yaml or json)")
	f.StringVarP(&format, "format", "f", "console", "report format (see 'invsim formats')")
	f.StringVarP(&outputDir, "output", "o", "", "write the report into this directory instead of stdout")

	f.Float64Var(&flagParams.InitialInvestment, "initial", 0, "initial investment")
	f.Float64Var(&flagParams.MonthlyContribution, "monthly", 0, "monthly contribution")
	f.Float64Var(&flagParams.YearlyBonus, "bonus", 0, "yearly bonus contribution")
	f.IntVar(&flagParams.Years, "years", 0, "investment horizon in years")
	f.Float64Var(&flagParams.ExpectedReturn, "return", 0, "expected annual return as a decimal (0.08 = 8%)")
	f.Float64Var(&flagParams.Volatility, "volatility", domain.DefaultVolatility, "annual return standard deviation as a decimal")
	f.IntVar(&flagParams.NumSimulations, "simulations", 0, "number of simulated paths")
	f.Int64Var(&flagParams.Seed, "seed", 0, "random seed (0 picks a fresh one)")
	f.IntVar(&flagParams.Workers, "workers", 0, "parallel workers (0 uses the settings default)")
	return cmd
}

// applyChangedFlags copies only the flags the user actually set onto params.
func applyChangedFlags(fs *pflag.FlagSet, params *domain.SimulationParameters, from domain.SimulationParameters) {
	set := map[string]func(){
		"initial":     func() { params.InitialInvestment = from.InitialInvestment },
		"monthly":     func() { params.MonthlyContribution = from.MonthlyContribution },
		"bonus":       func() { params.YearlyBonus = from.YearlyBonus },
		"years":       func() { params.Years = from.Years },
		"return":      func() { params.ExpectedReturn = from.ExpectedReturn },
		"volatility":  func() { params.Volatility = from.Volatility },
		"simulations": func() { params.NumSimulations = from.NumSimulations },
		"seed":        func() { params.Seed = from.Seed },
		"workers":     func() { params.Workers = from.Workers },
	}
	for name, apply := range set {
		if fs.Changed(name) {
			apply()
		}
	}
}
