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

package web

import (
	"fmt"
	"net/http"

	"github.com/profcheck/profcheck/pkg/summarize"
	"github.com/profcheck/profcheck/pkg/text"
)

// Serve starts up an HTTP server at a given endpoint.
func Serve(endpoint string, r *summarize.Report) {
	http.HandleFunc("/text", displayText(r))
	http.HandleFunc("/", displayReport(r))

	fmt.Printf("Listening at %s ...", endpoint)

	err := http.ListenAndServe(endpoint, nil)
	if err != nil {
		panic(err)
	}
}

func displayReport(r *summarize.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := Render(w, r); err != nil {
			http.Error(w, fmt.Sprintf("render failed: %v", err), 500)
		}
	}
}

func displayText(r *summarize.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, text.Report(r))
	}
}
