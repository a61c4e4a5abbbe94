package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/unklstewy/flyby/pkg/geoloc"
	"github.com/unklstewy/flyby/pkg/opensky"
)

// ReportFileName is the file written next to wherever the user ran the tool.
const ReportFileName = "flyby_report.html"

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>flyby report</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 2rem; background: #10141a; color: #e6edf3; }
  h1 { font-size: 1.4rem; }
  .meta { color: #8b949e; }
  table { border-collapse: collapse; margin-top: 1rem; }
  th, td { padding: 0.4rem 0.9rem; text-align: left; border-bottom: 1px solid #2a313c; }
  th { color: #58a6ff; font-weight: 600; }
  .ground { color: #d29922; }
  .empty { color: #8b949e; font-style: italic; }
  .count { margin-top: 1rem; font-weight: 600; }
</style>
</head>
<body>
<h1>&#9992; Aircraft overhead</h1>
<p class="meta">{{.Headline}}<br>Snapshot {{.Generated.Format "2006-01-02 15:04:05 MST"}}</p>
{{if .Rows}}
<table>
<tr><th>Flight</th><th>ICAO24</th><th>Origin</th><th>Altitude</th><th>Speed</th><th>Track</th><th>Climb</th><th>Distance</th><th>Status</th></tr>
{{- range .Rows}}
<tr><td>{{.Label}}</td><td>{{.ICAO24}}</td><td>{{.Country}}</td><td>{{.Altitude}}</td><td>{{.Speed}}</td><td>{{.Track}}</td><td>{{.Climb}}</td><td>{{.Distance}}</td><td{{if .Ground}} class="ground"{{end}}>{{.Status}}</td></tr>
{{- end}}
</table>
{{else}}
<p class="empty">No aircraft detected in the search area</p>
{{end}}
<p class="count">{{.Count}}</p>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

type htmlData struct {
	Headline  string
	Generated time.Time
	Rows      []Row
	Count     string
}

// HTML renders the snapshot as a self-contained HTML document.
func HTML(snap *opensky.Snapshot, loc geoloc.Location, radiusKm float64) ([]byte, error) {
	data := htmlData{
		Headline:  headline(loc, radiusKm),
		Generated: snap.Time.UTC(),
		Rows:      BuildRows(snap, loc.Coordinate),
		Count:     countLine(len(snap.States)),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTMLFile renders the report and writes it to dir, returning the
// path of the written file.
func WriteHTMLFile(dir string, snap *opensky.Snapshot, loc geoloc.Location, radiusKm float64) (string, error) {
	doc, err := HTML(snap, loc, radiusKm)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ReportFileName)
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("failed to write HTML report: %w", err)
	}
	return path, nil
}

// OpenInBrowser opens a written report with the platform's default viewer.
func OpenInBrowser(path string) error {
	return browser.OpenFile(path)
}
