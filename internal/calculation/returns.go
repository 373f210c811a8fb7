package calculation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// ReturnGenerator draws annual return multipliers from a Normal distribution.
// A generator is not safe for concurrent use; give each goroutine its own.
type ReturnGenerator struct {
	src rand.Source
}

// NewReturnGenerator creates a generator reading entropy from src.
func NewReturnGenerator(src rand.Source) *ReturnGenerator {
	return &ReturnGenerator{src: src}
}

// NewSeededReturnGenerator creates a generator over a PCG stream identified by seed and stream.
func NewSeededReturnGenerator(seed int64, stream uint64) *ReturnGenerator {
	return NewReturnGenerator(rand.NewPCG(uint64(seed), stream))
}

// Generate returns years independent multipliers, each a Normal(expectedReturn, volatility)
// draw plus 1.0. Draws below -1.0 are kept, yielding multipliers below zero.
func (g *ReturnGenerator) Generate(years int, expectedReturn, volatility float64) ([]float64, error) {
	if years < 1 {
		return nil, fmt.Errorf("%w: years must be at least 1, got %d", domain.ErrInvalidParameter, years)
	}
	if volatility < 0 || math.IsNaN(volatility) {
		return nil, fmt.Errorf("%w: volatility cannot be negative, got %v", domain.ErrInvalidParameter, volatility)
	}
	if math.IsNaN(expectedReturn) || math.IsInf(expectedReturn, 0) {
		return nil, fmt.Errorf("%w: expected return must be finite", domain.ErrInvalidParameter)
	}

	dist := distuv.Normal{Mu: expectedReturn, Sigma: volatility, Src: g.src}
	multipliers := make([]float64, years)
	for i := range multipliers {
		multipliers[i] = dist.Rand() + 1
	}
	return multipliers, nil
}
