package calculation

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/rpgo/investment-simulator/internal/domain"
)

func TestReturnGenerator_Length(t *testing.T) {
	gen := NewSeededReturnGenerator(42, 0)
	got, err := gen.Generate(30, 0.08, domain.DefaultVolatility)
	require.NoError(t, err)
	assert.Len(t, got, 30)
}

func TestReturnGenerator_ZeroVolatilityIsDeterministic(t *testing.T) {
	gen := NewReturnGenerator(rand.NewPCG(1, 2))
	got, err := gen.Generate(5, 0.08, 0)
	require.NoError(t, err)
	for _, m := range got {
		assert.InDelta(t, 1.08, m, 1e-12)
	}
}

func TestReturnGenerator_SameSeedSameSequence(t *testing.T) {
	a, err := NewSeededReturnGenerator(7, 3).Generate(20, 0.05, 0.2)
	require.NoError(t, err)
	b, err := NewSeededReturnGenerator(7, 3).Generate(20, 0.05, 0.2)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := NewSeededReturnGenerator(7, 4).Generate(20, 0.05, 0.2)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestReturnGenerator_SampleMoments(t *testing.T) {
	gen := NewSeededReturnGenerator(2024, 0)
	got, err := gen.Generate(20000, 0.08, 0.15)
	require.NoError(t, err)

	mean, std := stat.MeanStdDev(got, nil)
	assert.InDelta(t, 1.08, mean, 0.01)
	assert.InDelta(t, 0.15, std, 0.01)
}

func TestReturnGenerator_RejectsInvalidInput(t *testing.T) {
	gen := NewSeededReturnGenerator(1, 0)

	_, err := gen.Generate(10, 0.08, -0.01)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

	_, err = gen.Generate(0, 0.08, 0.15)
	assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
}
