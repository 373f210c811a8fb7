package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// CSVSummarizer implements the yearly percentile table CSV (one row per year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Invested", "P5", "P25", "Median", "P75", "P95"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range result.YearlyPercentiles {
		row := []string{
			intToString(r.Year),
			floatToString(r.Invested),
			floatToString(r.P5),
			floatToString(r.P25),
			floatToString(r.Median),
			floatToString(r.P75),
			floatToString(r.P95),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
