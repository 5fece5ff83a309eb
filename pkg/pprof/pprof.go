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

// Package pprof is for rendering a capture report into a pprof protobuf.
package pprof

import (
	"bytes"
	"time"

	pprofprofile "github.com/google/pprof/profile"
	"k8s.io/klog/v2"

	"github.com/profcheck/profcheck/pkg/summarize"
)

// Render outputs a gzip-compressed pprof protobuf of the report's
// per-thread function sample counts.
func Render(r *summarize.Report) ([]byte, error) {
	p := &pprofprofile.Profile{
		SampleType: []*pprofprofile.ValueType{
			{Type: "samples", Unit: "count"},
		},
		TimeNanos: time.Now().UnixNano(),
	}

	fmap := map[string]*pprofprofile.Function{}
	lmap := map[string]*pprofprofile.Location{}

	for _, t := range r.Threads {
		if t.SampleCount > 0 && len(t.TopFunctions) == 0 {
			klog.Errorf("thread %q has no resolvable functions, skipping", t.Name)
			continue
		}

		for _, fc := range t.TopFunctions {
			fn, ok := fmap[fc.Name]
			if !ok {
				fn = &pprofprofile.Function{
					ID:         uint64(len(fmap) + 1),
					Name:       fc.Name,
					SystemName: fc.Name,
				}
				fmap[fc.Name] = fn
				p.Function = append(p.Function, fn)
			}

			loc, ok := lmap[fc.Name]
			if !ok {
				loc = &pprofprofile.Location{
					ID:   uint64(len(lmap) + 1),
					Line: []pprofprofile.Line{{Function: fn}},
				}
				lmap[fc.Name] = loc
				p.Location = append(p.Location, loc)
			}

			p.Sample = append(p.Sample, &pprofprofile.Sample{
				Location: []*pprofprofile.Location{loc},
				Value:    []int64{int64(fc.Count)},
				Label:    map[string][]string{"thread": {t.Name}},
			})
		}
	}

	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
