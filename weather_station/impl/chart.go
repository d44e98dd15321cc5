package impl

import (
	"html/template"
	"io"

	"github.com/evkuzin/growstation/humidity"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// chronological reorders a history traversal, newest first followed by
// the rest oldest first, into plain oldest-to-newest order.
func chronological(readings []humidity.Reading) []humidity.Reading {
	if len(readings) < 2 {
		return readings
	}
	out := make([]humidity.Reading, 0, len(readings))
	out = append(out, readings[1:]...)
	return append(out, readings[0])
}

func (ws *weatherStationImpl) createGraph(w io.Writer) {
	line := createBaseGraph(chronological(ws.history.Snapshot()))
	err := line.Render(w)
	if err != nil {
		ws.logger.Infof("Unable to render graph. %v", err.Error())
	}
}

func createBaseGraph(samples []humidity.Reading) *charts.Line {
	line := charts.NewLine()
	xTime := make([]string, len(samples))
	yTemperature := make([]opts.LineData, len(samples))
	yHumidity := make([]opts.LineData, len(samples))
	for i, sample := range samples {
		xTime[i] = sample.Time.Format("15:04:05")
		yTemperature[i] = opts.LineData{Value: sample.Result.Temperature}
		yHumidity[i] = opts.LineData{Value: sample.Result.Humidity}
	}
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: "Temperature and humidity"}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      true,
			Trigger:   "axis",
			TriggerOn: "mousemove",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: true,
			},
		}))
	line.SetXAxis(xTime).
		AddSeries("Temperature", yTemperature).
		AddSeries("Humidity", yHumidity)
	return line
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Grow station report</title></head>
<body>
<h1>Grow station report</h1>
{{if .}}<table border="1" cellpadding="4">
<tr><th>Time (UTC)</th><th>Temperature (°C)</th><th>Humidity (%)</th></tr>
{{range .}}<tr><td>{{.Time.Format "2006-01-02 15:04:05"}}</td><td>{{.Result.Temperature}}</td><td>{{.Result.Humidity}}</td></tr>
{{end}}</table>{{else}}<p>No data</p>{{end}}
</body>
</html>
`))

func renderReport(w io.Writer, readings []humidity.Reading) error {
	return reportTemplate.Execute(w, readings)
}
