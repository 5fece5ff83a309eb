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

// Package text is for rendering a capture report into text form
package text

import (
	"fmt"
	"strings"

	"github.com/profcheck/profcheck/pkg/summarize"
)

// Report outputs the human-readable analysis of a capture.
func Report(r *summarize.Report) string {
	var sb strings.Builder

	sb.WriteString("=== АНАЛИЗ ОПТИМИЗИРОВАННОГО ПРОФИЛЯ ===\n\n")
	sb.WriteString(fmt.Sprintf("Всего потоков: %d\n\n", len(r.Threads)))

	for _, t := range r.Threads {
		sb.WriteString(fmt.Sprintf("Поток %d: %s\n", t.Position, t.Name))
		sb.WriteString(fmt.Sprintf("  Основной поток: %v\n", t.IsMainThread))
		sb.WriteString(fmt.Sprintf("  Количество семплов: %d\n", t.SampleCount))

		if t.SampleCount > 0 {
			sb.WriteString(fmt.Sprintf("  Общее время: %.2f мс\n", t.TotalTimeMillis))
			sb.WriteString(fmt.Sprintf("  CPU время: %d мкс\n", t.CPUMicros))

			if len(t.TopFunctions) > 0 {
				sb.WriteString(fmt.Sprintf("  Топ-%d функций по семплам:\n", r.Top))
				for _, fc := range t.TopFunctions {
					sb.WriteString(fmt.Sprintf("    %s: %d\n", fc.Name, fc.Count))
				}
			}
		}

		sb.WriteString("\n")
	}

	sb.WriteString("=== СВОДКА ===\n")
	sb.WriteString(fmt.Sprintf("Общее количество семплов: %d\n", r.TotalSamples))
	sb.WriteString(fmt.Sprintf("Общее CPU время: %d мкс (%.2f мс)\n\n", r.TotalCPUMicros, float64(r.TotalCPUMicros)/1000))

	sb.WriteString(Comparison(r, summarize.DefaultBaseline))

	sb.WriteString("=== ОПТИМИЗАЦИЯ ЗАВЕРШЕНА ===\n")

	return sb.String()
}

// Comparison outputs the static reference block comparing the capture
// against a previously recorded baseline.
func Comparison(r *summarize.Report, b summarize.Baseline) string {
	var sb strings.Builder

	sb.WriteString("=== СРАВНЕНИЕ С ПРЕДЫДУЩИМ ПРОФИЛЕМ ===\n")
	sb.WriteString("Предыдущий профиль (с 60-секундной задержкой):\n")
	sb.WriteString(fmt.Sprintf("  CPU время: %d мкс (%.2f мс)\n", b.CPUMicros, float64(b.CPUMicros)/1000))
	sb.WriteString(fmt.Sprintf("  Основное узкое место: %s\n\n", b.Bottleneck))

	sb.WriteString("Оптимизированный профиль (без блокировки):\n")
	sb.WriteString(fmt.Sprintf("  CPU время: %d мкс (%.2f мс)\n", r.TotalCPUMicros, float64(r.TotalCPUMicros)/1000))
	sb.WriteString(fmt.Sprintf("  Улучшение: ~%d%% снижение CPU времени\n\n", summarize.Improvement(b.CPUMicros, r.TotalCPUMicros)))

	return sb.String()
}
