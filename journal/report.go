package journal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/natgasvol/market"
)

// Report summarizes one analysis run.
type Report struct {
	RunID   string
	Created time.Time
	Dataset string
	Source  string // input path

	// Chronological bounds of the normalized series
	Rows       int
	StartLabel string
	EndLabel   string

	Window         int
	Strategy       string
	PeriodsPerYear float64

	Price      market.Summary
	Returns    market.Summary
	Volatility market.Summary
	Annualized *market.Summary

	SeriesCSV string
	Notes     []string
}

var reportFuncs = template.FuncMap{
	"val": func(v market.Value) string {
		x, ok := v.Get()
		if !ok {
			return "n/a"
		}
		return fmt.Sprintf("%.4f", x)
	},
	"f4": func(x float64) string { return fmt.Sprintf("%.4f", x) },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders the report as an Org-mode entry.
func (r *Report) WriteOrg(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}

// WriteOrgFile renders the report to path.
func (r *Report) WriteOrgFile(path string) error {
	buf := new(bytes.Buffer)
	if err := r.WriteOrg(buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

const ReportOrgTemplate = `* VOLATILITY: {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}} (Window: {{.Window}} weeks)
:PROPERTIES:
:RUN_ID:      {{if .RunID}}{{.RunID}}{{else}}(run-id?){{end}}
:SOURCE:      {{if .Source}}{{.Source}}{{else}}(source?){{end}}
:ROWS:        {{.Rows}}
:START_DATE:  {{if .StartLabel}}{{.StartLabel}}{{else}}(start?){{end}}
:END_DATE:    {{if .EndLabel}}{{.EndLabel}}{{else}}(end?){{end}}
:WINDOW:      {{.Window}}
:STRATEGY:    {{.Strategy}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Summary
| Series             | Defined | Undefined |   Mean |    Min |    Max |   Last |
|--------------------+---------+-----------+--------+--------+--------+--------|
| Price              | {{.Price.Count}} | {{.Price.Undefined}} | {{f4 .Price.Mean}} | {{f4 .Price.Min}} | {{f4 .Price.Max}} | {{val .Price.Last}} |
| Log return         | {{.Returns.Count}} | {{.Returns.Undefined}} | {{f4 .Returns.Mean}} | {{f4 .Returns.Min}} | {{f4 .Returns.Max}} | {{val .Returns.Last}} |
| Rolling volatility | {{.Volatility.Count}} | {{.Volatility.Undefined}} | {{f4 .Volatility.Mean}} | {{f4 .Volatility.Min}} | {{f4 .Volatility.Max}} | {{val .Volatility.Last}} |
{{- with .Annualized }}
| Annualized ({{printf "%.0f" $.PeriodsPerYear}}/yr) | {{.Count}} | {{.Undefined}} | {{f4 .Mean}} | {{f4 .Min}} | {{f4 .Max}} | {{val .Last}} |
{{- end }}

** Series
{{- if .SeriesCSV }}
[[file:{{.SeriesCSV}}]]
{{- else }}
# (optional) link the exported series CSV here
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
