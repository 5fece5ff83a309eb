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

// Package summarize reduces a profiler capture into per-thread statistics
package summarize

import (
	"fmt"
	"sort"

	"github.com/profcheck/profcheck/pkg/fxprof"
)

// DefaultTop is how many functions a thread block reports.
const DefaultTop = 5

// Baseline is a previously recorded capture to compare the current one against.
type Baseline struct {
	CPUMicros  int64
	Bottleneck string
}

// DefaultBaseline is the reference capture taken before the delay was removed.
var DefaultBaseline = Baseline{
	CPUMicros:  9087,
	Bottleneck: "NtDelayExecution (ожидание)",
}

// FunctionCount is one entry of a thread's most-sampled function list.
type FunctionCount struct {
	Name  string
	Count int
}

// ThreadStats holds everything the report prints for one thread.
type ThreadStats struct {
	Position        int // 1-based document order
	Name            string
	IsMainThread    bool
	SampleCount     int
	TotalTimeMillis float64
	CPUMicros       int64
	TopFunctions    []FunctionCount
}

// Report is the reduction of an entire capture.
type Report struct {
	Threads        []ThreadStats
	Top            int
	TotalSamples   int64
	TotalCPUMicros int64
}

// Summarize folds a capture into a report. topN bounds each thread's
// function list; values < 1 fall back to DefaultTop.
func Summarize(doc *fxprof.Document, topN int) *Report {
	if topN < 1 {
		topN = DefaultTop
	}

	r := &Report{Top: topN}

	for i := range doc.Threads {
		ts := threadStats(&doc.Threads[i], i+1, topN)
		r.Threads = append(r.Threads, ts)

		if ts.SampleCount > 0 {
			r.TotalSamples += int64(ts.SampleCount)
			r.TotalCPUMicros += ts.CPUMicros
		}
	}

	return r
}

func threadStats(t *fxprof.Thread, position, topN int) ThreadStats {
	ts := ThreadStats{
		Position:     position,
		Name:         t.Name,
		IsMainThread: t.IsMainThread,
		SampleCount:  t.Samples.Length,
	}
	if ts.Name == "" {
		ts.Name = defaultName(position)
	}

	if ts.SampleCount == 0 {
		return ts
	}

	for _, d := range t.Samples.TimeDeltas {
		ts.TotalTimeMillis += d
	}
	for _, d := range t.Samples.ThreadCPUDelta {
		ts.CPUMicros += d
	}

	if len(t.StackTable.Frame) > 0 && t.Samples.Stack != nil {
		ts.TopFunctions = topFunctions(t, topN)
	}

	return ts
}

// topFunctions counts how often each function name shows up across the
// thread's samples and keeps the topN most frequent. Ties keep the order
// names were first seen in, matching the counting order of the capture.
func topFunctions(t *fxprof.Thread, topN int) []FunctionCount {
	counts := map[string]int{}
	order := []string{}

	for _, stackIdx := range t.Samples.Stack {
		name, ok := resolveFunctionName(t, stackIdx)
		if !ok {
			continue
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	ranked := make([]FunctionCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, FunctionCount{Name: name, Count: counts[name]})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}

// resolveFunctionName walks a sample's stack index through the frame and
// func tables to a display name. A nil or out-of-range index at any stage
// means the sample is skipped.
func resolveFunctionName(t *fxprof.Thread, stackIdx *int) (string, bool) {
	if stackIdx == nil {
		return "", false
	}

	si := *stackIdx
	if si < 0 || si >= len(t.StackTable.Frame) {
		return "", false
	}

	fi := t.StackTable.Frame[si]
	if fi < 0 || fi >= len(t.FrameTable.Func) {
		return "", false
	}

	ni := t.FrameTable.Func[fi]
	if ni < 0 || ni >= len(t.FuncTable.Name) {
		return "", false
	}

	return t.FuncTable.Name[ni], true
}

// Improvement computes the percentage drop in CPU time relative to a
// baseline, truncated toward zero. Negative when the capture regressed.
func Improvement(baselineCPUMicros, totalCPUMicros int64) int {
	return int(float64(baselineCPUMicros-totalCPUMicros) / float64(baselineCPUMicros) * 100)
}

func defaultName(position int) string {
	return fmt.Sprintf("Thread %d", position)
}
