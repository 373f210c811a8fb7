package calculation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// MonteCarloSimulator runs independent portfolio paths and aggregates them
// into percentile bands and a confidence interval.
type MonteCarloSimulator struct {
	Logger zerolog.Logger
}

// NewMonteCarloSimulator creates a simulator with a no-op logger.
func NewMonteCarloSimulator() *MonteCarloSimulator {
	return &MonteCarloSimulator{Logger: zerolog.Nop()}
}

// SetLogger sets the logger used for run diagnostics.
func (mcs *MonteCarloSimulator) SetLogger(l zerolog.Logger) {
	mcs.Logger = l.With().Str("component", "montecarlo").Logger()
}

// RunSimulation validates params, simulates params.NumSimulations paths and
// computes the cross-path statistics.
//
// Paths are dealt to workers round-robin; worker w owns PCG stream w of the run
// seed, so a given (seed, workers) pair always reproduces the same result.
func (mcs *MonteCarloSimulator) RunSimulation(ctx context.Context, params domain.SimulationParameters) (*domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.Seed == 0 {
		params.Seed = seedFunc()
	}
	runID := runIDFunc()
	start := nowFunc()

	n := params.NumSimulations
	workers := params.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	log := mcs.Logger.With().Str("run_id", runID).Logger()
	log.Debug().
		Int("paths", n).
		Int("years", params.Years).
		Int("workers", workers).
		Int64("seed", params.Seed).
		Msg("Starting Monte Carlo run")

	paths := make([]domain.Path, n)
	finalBalances := make([]float64, n)
	meanReturns := make([]float64, n)

	simulate := func(ctx context.Context, worker int) error {
		gen := NewSeededReturnGenerator(params.Seed, uint64(worker))
		for i := worker; i < n; i += workers {
			if err := ctx.Err(); err != nil {
				return err
			}
			multipliers, err := gen.Generate(params.Years, params.ExpectedReturn, params.Volatility)
			if err != nil {
				return err
			}
			outcome, err := SimulatePath(params, multipliers)
			if err != nil {
				return err
			}
			paths[i] = outcome.Path
			finalBalances[i] = outcome.FinalBalance
			meanReturns[i] = outcome.Summary.MeanReturn
		}
		return nil
	}

	var err error
	if workers == 1 {
		err = simulate(ctx, 0)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error { return simulate(gctx, w) })
		}
		err = g.Wait()
	}
	if err != nil {
		log.Warn().Err(err).Msg("Monte Carlo run aborted")
		return nil, fmt.Errorf("monte carlo run %s: %w", runID, err)
	}

	result := &domain.SimulationResult{
		RunID:             runID,
		Parameters:        params,
		Seed:              params.Seed,
		Paths:             paths,
		FinalBalances:     finalBalances,
		MeanReturns:       meanReturns,
		YearlyPercentiles: YearlyPercentiles(paths, params),
		Confidence:        ConfidenceLevels(finalBalances),
	}
	result.Duration = nowFunc().Sub(start)

	log.Info().
		Int("paths", n).
		Float64("median_final", result.MedianFinalBalance()).
		Dur("duration", result.Duration).
		Msg("Monte Carlo run complete")

	return result, nil
}
