package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/investment-simulator/internal/domain"
)

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport writes the run in the given format to a timestamped file in dir
// and returns the file names. "all" writes the console text and the per-path CSV.
func GenerateReport(result *domain.SimulationResult, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, result, dir, FileExtension(f))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	switch format {
	case "all":
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, result, dir, FileExtension(f))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	default:
		// enrich error with available formatters and aliases
		return nil, unsupported(format)
	}
}

// WriteReport formats the run and streams it to w.
func WriteReport(w io.Writer, result *domain.SimulationResult, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return unsupported(format)
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}
