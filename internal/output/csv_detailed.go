package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// CSVDetailedExporter provides one row per simulated path: its mean return,
// final balance and every year-end balance.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(result *domain.SimulationResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	years := result.Parameters.Years
	header := []string{"Path", "MeanReturnPct", "FinalBalance"}
	for y := 0; y <= years; y++ {
		header = append(header, fmt.Sprintf("Year%d", y))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, path := range result.Paths {
		row := make([]string, 0, len(header))
		row = append(row, intToString(i), floatToString(result.MeanReturns[i]), floatToString(result.FinalBalances[i]))
		for _, v := range path {
			row = append(row, floatToString(v))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
