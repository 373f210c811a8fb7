package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// Upper bounds accepted from parameter files. The engine itself has no caps.
const (
	MaxYears       = 100
	MaxSimulations = 1_000_000
	MaxWorkers     = 256
)

// InputParser handles parsing of simulation parameter files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads parameters from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationParameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML (or JSON) parameters, applies defaults and validates them.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func (ip *InputParser) Parse(data []byte) (*domain.SimulationParameters, error) {
	params := domain.SimulationParameters{Volatility: domain.DefaultVolatility}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateParameters(&params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}
	return &params, nil
}

// ValidateParameters checks the engine's domain rules and the file-level limits
func (ip *InputParser) ValidateParameters(params *domain.SimulationParameters) error {
	if params == nil {
		return fmt.Errorf("%w: no parameters provided", domain.ErrInvalidParameter)
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if params.Years > MaxYears {
		return fmt.Errorf("%w: years must be between 1 and %d", domain.ErrInvalidParameter, MaxYears)
	}
	if params.NumSimulations > MaxSimulations {
		return fmt.Errorf("%w: number of simulations must be between 1 and %d", domain.ErrInvalidParameter, MaxSimulations)
	}
	if params.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d", domain.ErrInvalidParameter, MaxWorkers)
	}
	return nil
}

// CreateExampleParameters returns the default scenario: 50k start, 1k monthly,
// 5k yearly bonus over 20 years at 8% expected return and 15% volatility.
func (ip *InputParser) CreateExampleParameters() *domain.SimulationParameters {
	return &domain.SimulationParameters{
		InitialInvestment:   50000,
		MonthlyContribution: 1000,
		YearlyBonus:         5000,
		Years:               20,
		ExpectedReturn:      0.08,
		Volatility:          domain.DefaultVolatility,
		NumSimulations:      1000,
	}
}

// SaveParameters writes parameters as YAML
func (ip *InputParser) SaveParameters(params *domain.SimulationParameters, filename string) error {
	b, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
