/*
Copyright 2026 The profcheck Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package web is for generating HTML visualizations of capture reports
package web

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/template"

	"golang.org/x/image/colornames"

	"github.com/profcheck/profcheck/pkg/summarize"
)

var chartTemplate = `
<html>
  <head>
    <script type="text/javascript" src="https://www.gstatic.com/charts/loader.js"></script>
    <script type="text/javascript">
      google.charts.load('current', {'packages': ['corechart']});
      google.charts.setOnLoadCallback(drawCharts);

      function drawCharts() {
        {{ range $t := .R.Threads }}
        {{ if $t.TopFunctions }}
        var data{{ $t.Position }} = google.visualization.arrayToDataTable([
          ['Function', 'Samples', { role: 'style' }],
          {{ range $t.TopFunctions }}
          [ '{{ .Name }}', {{ .Count }}, '{{ Color .Name }}' ],
          {{ end }}
        ]);
        new google.visualization.BarChart(document.getElementById('chart{{ $t.Position }}')).draw(data{{ $t.Position }}, {
          title: 'Топ-{{ $.R.Top }} функций по семплам',
          legend: { position: 'none' },
        });
        {{ end }}
        {{ end }}
      }
    </script>
  </head>
  <body>
    <h1>profcheck: {{ len .R.Threads }} потоков, {{ .R.TotalSamples }} семплов, {{ .R.TotalCPUMicros }} мкс CPU</h1>
    {{ range $t := .R.Threads }}
    <h2>Поток {{ $t.Position }}: {{ $t.Name }}{{ if $t.IsMainThread }} (основной){{ end }}</h2>
    <ul>
      <li>Количество семплов: {{ $t.SampleCount }}</li>
      {{ if gt $t.SampleCount 0 }}
      <li>Общее время: {{ Millis $t.TotalTimeMillis }} мс</li>
      <li>CPU время: {{ $t.CPUMicros }} мкс</li>
      {{ end }}
    </ul>
    {{ if $t.TopFunctions }}<div id="chart{{ $t.Position }}" style="width: 900px; height: 300px;"></div>{{ end }}
    {{ end }}
  </body>
</html>
`

var colorMap = map[string]color.RGBA{}

// Render renders an HTML page representing a capture report.
func Render(w io.Writer, r *summarize.Report) error {
	updateColorMap(r, colorMap)

	fmap := template.FuncMap{
		"Millis": millis,
		"Color":  funcColor,
	}

	t, err := template.New("report").Funcs(fmap).Parse(chartTemplate)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}

	rc := struct {
		R *summarize.Report
	}{
		R: r,
	}

	if err := t.ExecuteTemplate(w, "report", rc); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	return nil
}

func millis(ms float64) string {
	return fmt.Sprintf("%.2f", ms)
}

func updateColorMap(r *summarize.Report, cm map[string]color.RGBA) {
	chosen := map[string]bool{}

	for _, t := range r.Threads {
		for _, fc := range t.TopFunctions {
			_, ok := cm[fc.Name]
			if ok {
				continue
			}

			// gimmick: try to find a similar name
			for name, value := range colornames.Map {
				if strings.Contains(name, "white") {
					continue
				}

				if len(fc.Name) == 0 || name[0] != fc.Name[0] {
					continue
				}

				if !chosen[name] {
					chosen[name] = true
					cm[fc.Name] = value

					break
				}
			}

			_, ok = cm[fc.Name]
			if ok {
				continue
			}

			// Giveup
			for name, value := range colornames.Map {
				if strings.Contains(name, "white") {
					continue
				}

				if !chosen[name] {
					chosen[name] = true
					cm[fc.Name] = value

					break
				}
			}
		}
	}
}

func funcColor(name string) string {
	c := colorMap[name]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
