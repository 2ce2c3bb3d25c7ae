package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/nyem69/flotilla-freedom-2025/pkg/fleet"
)

const emailBodyTemplate = `<h2>Flotilla tracker report</h2>
<p>
	Generated {{ .Report.GeneratedAt.Format "02 Jan 2006 15:04" }} UTC.
	{{ .Report.Stats.Total }} vessels tracked:
	{{ .Report.Stats.Sailing }} sailing,
	{{ .Report.Stats.Intercepted }} intercepted,
	{{ .Report.Stats.Other }} other.
	{{ if .Report.Stats.MostRecentUpdate }}Freshest position data is {{ .DataAge }} old.{{ end }}
</p>
<table border="1" cellpadding="4" cellspacing="0">
	<tr>
		<th>Vessel</th>
		<th>Status</th>
		<th>Distance</th>
		<th>Speed</th>
		<th>ETA</th>
		<th>Last update</th>
	</tr>
	{{ range .Report.Vessels }}
	<tr>
		<td>{{ .Name }}</td>
		<td>{{ .Status }}</td>
		<td>{{ distance .DistanceNm }}</td>
		<td>{{ speed .Speed }}</td>
		<td>{{ .ETADisplay }}</td>
		<td>{{ .LastUpdatedDisplay }}</td>
	</tr>
	{{ end }}
</table>
{{ if .Report.SkippedRecords }}<p>{{ .Report.SkippedRecords }} non-vessel rows skipped.</p>{{ end }}
`

type Renderer struct {
	template *template.Template
}

func NewRenderer() *Renderer {
	emailTemplate := template.Must(template.New("email").Funcs(template.FuncMap{
		"distance": func(distanceNm *float64) string {
			if distanceNm == nil {
				return "Unknown"
			}

			return fmt.Sprintf("%.0f nm", *distanceNm)
		},
		"speed": func(speed *float64) string {
			if speed == nil {
				return "Unknown"
			}

			return fmt.Sprintf("%.1f kn", *speed)
		},
	}).Parse(emailBodyTemplate))

	return &Renderer{template: emailTemplate}
}

// Render produces the email for one pipeline report
func (r *Renderer) Render(report *fleet.Report) (Email, error) {
	dataAge := report.DataAge(time.Now().UTC())

	var body bytes.Buffer
	err := r.template.Execute(&body, struct {
		Report  *fleet.Report
		DataAge string
	}{
		Report:  report,
		DataAge: formatAge(dataAge),
	})
	if err != nil {
		return Email{}, fmt.Errorf("failed to render report email: %w", err)
	}

	return Email{
		Subject: fmt.Sprintf("Flotilla tracker: %d sailing, %d intercepted", report.Stats.Sailing, report.Stats.Intercepted),
		Body:    body.String(),
	}, nil
}

func formatAge(age time.Duration) string {
	if age < time.Hour {
		return fmt.Sprintf("%dm", int(age.Minutes()))
	}

	return fmt.Sprintf("%dh %dm", int(age.Hours()), int(age.Minutes())%60)
}
