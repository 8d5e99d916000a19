package server

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
)

type tableRow struct {
	Interview  string
	Collected  string
	New        string
	Cumulative string
}

type indexData struct {
	Label   string
	Unit    string
	Error   string
	Hint    string
	Example []tableRow
}

type resultData struct {
	Label     string
	Rows      []tableRow
	Summary   pipeline.Summary
	Dropped   int
	ChartJSON template.JS
	AvgItems  string
	AvgNew    string
}

func tableRows(res *pipeline.Result) []tableRow {
	rows := make([]tableRow, 0, len(res.Dataset.Records))
	for _, r := range res.Dataset.Records {
		rows = append(rows, tableRow{
			Interview:  formatNumber(r.InterviewNumber),
			Collected:  formatNumber(r.ItemsCollected),
			New:        formatNumber(r.NewItems),
			Cumulative: formatNumber(r.CumulativeUnique),
		})
	}
	return rows
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Visualizing {{.Label}} Saturation Over Interviews</title>
<style>
body { font-family: sans-serif; max-width: 900px; margin: 2em auto; color: #101F38; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #dce0e5; padding: 4px 12px; text-align: right; }
th { background: #f4f5f6; }
.error { color: #e53935; font-weight: bold; }
.hint { color: #6b7280; white-space: pre-line; }
</style>
</head>
<body>
<h1>Visualizing {{.Label}} Saturation Over Interviews</h1>
<p>Upload a CSV file to see how {{.Unit}} accumulate over the course of
interviews and judge whether saturation has been reached.</p>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form action="/analyze" method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept=".csv">
  <input type="hidden" name="unit" value="{{.Unit}}">
  <button type="submit">Analyze</button>
</form>
<p class="hint">{{.Hint}}</p>
<h2>Expected CSV Format</h2>
<table>
  <tr><th>Interview</th><th>{{.Label}} Collected</th><th>New {{.Label}}</th><th>Cumulative Unique {{.Label}}</th></tr>
  {{range .Example}}<tr><td>{{.Interview}}</td><td>{{.Collected}}</td><td>{{.New}}</td><td>{{.Cumulative}}</td></tr>
  {{end}}
</table>
</body>
</html>
`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Interview {{.Label}} Analysis</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { font-family: sans-serif; max-width: 900px; margin: 2em auto; color: #101F38; }
table { border-collapse: collapse; margin: 1em 0; }
th, td { border: 1px solid #dce0e5; padding: 4px 12px; text-align: right; }
th { background: #f4f5f6; }
.metrics { display: flex; gap: 1em; margin: 1em 0; }
.metric { border: 1px solid #dce0e5; border-radius: 8px; padding: 0.5em 1.5em; text-align: center; }
.metric .value { color: #8BC34A; font-size: 1.6em; font-weight: bold; }
.metric .label { color: #6b7280; font-size: 0.85em; }
.dropped { color: #b45309; }
</style>
</head>
<body>
<h1>Interview {{.Label}} Analysis</h1>
{{if .Dropped}}<p class="dropped">{{.Dropped}} row(s) dropped: non-numeric value in a required column.</p>{{end}}
<h2>Data Preview</h2>
<table>
  <tr><th>Interview</th><th>{{.Label}} Collected</th><th>New {{.Label}}</th><th>Cumulative Unique {{.Label}}</th></tr>
  {{range .Rows}}<tr><td>{{.Interview}}</td><td>{{.Collected}}</td><td>{{.New}}</td><td>{{.Cumulative}}</td></tr>
  {{end}}
</table>
<h2>Visualization</h2>
<div id="chart" style="height:600px"></div>
<div class="metrics">
  <div class="metric"><div class="value">{{.Summary.TotalInterviews}}</div><div class="label">Total Interviews</div></div>
  <div class="metric"><div class="value">{{.Summary.TotalUniqueItems}}</div><div class="label">Total Unique {{.Label}}</div></div>
  <div class="metric"><div class="value">{{.AvgItems}}</div><div class="label">Avg {{.Label}}/Interview</div></div>
  <div class="metric"><div class="value">{{.AvgNew}}</div><div class="label">Avg New {{.Label}}/Interview</div></div>
</div>
<p><a href="/">Analyze another file</a></p>
<script>
var payload = {{.ChartJSON}};
Plotly.newPlot("chart", [
  {
    x: payload.cumulative.x,
    y: payload.cumulative.y,
    mode: "lines+markers",
    name: payload.cumulative.name,
    line: { color: "red", width: 3 },
    marker: { size: 8 }
  },
  {
    x: payload.perRow.x,
    y: payload.perRow.y,
    type: "bar",
    name: payload.perRow.name,
    marker: { color: "blue" },
    opacity: 0.7,
    yaxis: "y2"
  }
], {
  title: payload.title,
  hovermode: "x unified",
  xaxis: { title: payload.xAxisTitle },
  yaxis: { title: payload.leftTitle, range: [0, payload.yMax] },
  yaxis2: { title: payload.rightTitle, range: [0, payload.yMax], overlaying: "y", side: "right" },
  legend: { orientation: "h", yanchor: "bottom", y: 1.02, xanchor: "right", x: 1 }
});
</script>
</body>
</html>
`))
