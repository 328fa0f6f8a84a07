package email

import (
	"bytes"
	"html/template"
)

type hotLeadAlertData struct {
	Count    int
	TopName  string
	TopEmail string
}

type leadReportData struct {
	FileName string
}

var (
	tmplHotLeadAlert = template.Must(template.New("hot_lead_alert").Parse(`<html><body>
<h2>New hot lead alert</h2>
<p>You have {{.Count}} new hot lead(s).</p>
<p>Top lead: <strong>{{.TopName}}</strong> &mdash; {{.TopEmail}}</p>
</body></html>`))

	tmplLeadReport = template.Must(template.New("lead_report").Parse(`<html><body>
<p>Attached is your filtered lead report ({{.FileName}}).</p>
</body></html>`))
)

func renderEmailTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
