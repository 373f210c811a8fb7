package output

import (
	"gopkg.in/yaml.v3"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// YAMLFormatter serializes the run report as YAML.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

func (y YAMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	return yaml.Marshal(BuildReport(result))
}
