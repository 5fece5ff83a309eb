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

package text

import (
	"strings"
	"testing"

	"github.com/profcheck/profcheck/pkg/summarize"
)

func TestReportEmpty(t *testing.T) {
	out := Report(&summarize.Report{Top: summarize.DefaultTop})

	for _, want := range []string{
		"=== АНАЛИЗ ОПТИМИЗИРОВАННОГО ПРОФИЛЯ ===",
		"Всего потоков: 0",
		"Общее количество семплов: 0",
		"Общее CPU время: 0 мкс (0.00 мс)",
		"Улучшение: ~100% снижение CPU времени",
		"=== ОПТИМИЗАЦИЯ ЗАВЕРШЕНА ===",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReportZeroSampleThread(t *testing.T) {
	r := &summarize.Report{
		Top: summarize.DefaultTop,
		Threads: []summarize.ThreadStats{
			{Position: 1, Name: "Idle", SampleCount: 0},
		},
	}

	out := Report(r)

	if !strings.Contains(out, "Поток 1: Idle") {
		t.Errorf("report missing thread header:\n%s", out)
	}
	if !strings.Contains(out, "Количество семплов: 0") {
		t.Errorf("report missing sample count:\n%s", out)
	}
	for _, absent := range []string{"Общее время:", "CPU время: 0 мкс\n", "Топ-"} {
		if strings.Contains(out, absent) {
			t.Errorf("zero-sample report should not contain %q:\n%s", absent, out)
		}
	}
}

func TestReportThreadBlock(t *testing.T) {
	r := &summarize.Report{
		Top: summarize.DefaultTop,
		Threads: []summarize.ThreadStats{
			{
				Position:        1,
				Name:            "GeckoMain",
				IsMainThread:    true,
				SampleCount:     3,
				TotalTimeMillis: 7.0,
				CPUMicros:       600,
				TopFunctions: []summarize.FunctionCount{
					{Name: "foo", Count: 2},
					{Name: "bar", Count: 1},
				},
			},
		},
		TotalSamples:   3,
		TotalCPUMicros: 600,
	}

	out := Report(r)

	for _, want := range []string{
		"Поток 1: GeckoMain",
		"Основной поток: true",
		"Количество семплов: 3",
		"Общее время: 7.00 мс",
		"CPU время: 600 мкс",
		"Топ-5 функций по семплам:",
		"    foo: 2",
		"    bar: 1",
		"Общее количество семплов: 3",
		"Общее CPU время: 600 мкс (0.60 мс)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestComparison(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		want  string
	}{
		{"improvement", 600, "Улучшение: ~93% снижение CPU времени"},
		{"regression stays unclamped", 10000, "Улучшение: ~-10% снижение CPU времени"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Comparison(&summarize.Report{TotalCPUMicros: tc.total}, summarize.DefaultBaseline)

			for _, want := range []string{
				"=== СРАВНЕНИЕ С ПРЕДЫДУЩИМ ПРОФИЛЕМ ===",
				"CPU время: 9087 мкс (9.09 мс)",
				"Основное узкое место: NtDelayExecution (ожидание)",
				tc.want,
			} {
				if !strings.Contains(out, want) {
					t.Errorf("comparison missing %q:\n%s", want, out)
				}
			}
		})
	}
}
