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

// Package fxprof turns profiler captures into objects for analysis
package fxprof

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoThreads is returned when a document lacks the top-level threads key.
var ErrNoThreads = errors.New("document has no threads key")

// Document is the top-level profiler capture.
type Document struct {
	Threads []Thread
}

// Thread is one profiled thread with its sample and lookup tables.
type Thread struct {
	Name         string     `json:"name"`
	IsMainThread bool       `json:"isMainThread"`
	Samples      Samples    `json:"samples"`
	StackTable   StackTable `json:"stackTable"`
	FrameTable   FrameTable `json:"frameTable"`
	FuncTable    FuncTable  `json:"funcTable"`
}

// Samples holds per-sample deltas and the stack index of each sample.
// Stack entries may be null in the capture, hence the pointer slice.
type Samples struct {
	Length         int       `json:"length"`
	TimeDeltas     []float64 `json:"timeDeltas"`
	ThreadCPUDelta []int64   `json:"threadCPUDelta"`
	Stack          []*int    `json:"stack"`
}

// StackTable maps a stack index to its leaf frame index.
type StackTable struct {
	Frame []int `json:"frame"`
}

// FrameTable maps a frame index to a function index.
type FrameTable struct {
	Func []int `json:"func"`
}

// FuncTable maps a function index to its display name.
type FuncTable struct {
	Name []string `json:"name"`
}

// document distinguishes an absent threads key from an empty one.
type document struct {
	Threads *[]Thread `json:"threads"`
}

// utf8BOM is the byte order mark some capture writers prepend.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Read parses a decompressed profiler capture.
func Read(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(utf8BOM))
	if err == nil && head[0] == utf8BOM[0] && head[1] == utf8BOM[1] && head[2] == utf8BOM[2] {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("discard bom: %w", err)
		}
	}

	var doc document
	if err := json.NewDecoder(br).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if doc.Threads == nil {
		return nil, ErrNoThreads
	}

	return &Document{Threads: *doc.Threads}, nil
}
