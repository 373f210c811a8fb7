package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rpgo/investment-simulator/internal/domain"
)

// HTMLFormatter produces a self-contained HTML report with Chart.js charts.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"cents": FormatCurrencyCents,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"json": func(v interface{}) (template.JS, error) {
		b, err := EncodeJSON(v, "")
		return template.JS(b), err
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, BuildReport(result)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
