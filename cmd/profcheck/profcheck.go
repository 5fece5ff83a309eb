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

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/browser"
	"github.com/spf13/pflag"

	"github.com/profcheck/profcheck/pkg/fxprof"
	"github.com/profcheck/profcheck/pkg/gunzip"
	"github.com/profcheck/profcheck/pkg/pprof"
	"github.com/profcheck/profcheck/pkg/summarize"
	"github.com/profcheck/profcheck/pkg/text"
	"github.com/profcheck/profcheck/pkg/web"
)

const defaultCapture = "optimized-profile.json.gz"

var (
	httpEndpoint = pflag.String("http", "", "HTTP endpoint to serve the report at")
	htmlPath     = pflag.String("html", "", "Path to output HTML content to")
	pprofPath    = pflag.String("pprof", "", "Path to output pprof content to")
	top          = pflag.Int("top", summarize.DefaultTop, "Functions to report per thread")
	open         = pflag.Bool("open", false, "Open the served report in a browser (with --http)")
)

func main() {
	pflag.Parse()

	if len(pflag.Args()) > 1 {
		fmt.Fprintln(os.Stderr, "usage: profcheck [flags] [capture.json.gz]")
		os.Exit(64) // EX_USAGE
	}

	path := defaultCapture
	if len(pflag.Args()) == 1 {
		path = pflag.Args()[0]
	}

	// A bare .json capture skips the decompression step.
	if strings.HasSuffix(path, ".gz") {
		fmt.Println("Распаковываем профиль...")

		d := &gunzip.Decompressor{}

		out, err := d.Run(path)
		if err != nil {
			var de *gunzip.DiagnosticError
			if errors.As(err, &de) {
				fmt.Println("Ошибка распаковки:", de.Diagnostic)
			} else {
				fmt.Println("Ошибка распаковки:", err)
			}

			os.Exit(1)
		}

		path = out
	}

	fmt.Println("Анализируем профиль...")

	f, err := os.Open(path)
	if err != nil {
		glog.Fatalf("open: %v", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			glog.Errorf("close failed: %v", err)
		}
	}()

	doc, err := fxprof.Read(f)
	if err != nil {
		glog.Fatalf("parse: %v", err)
	}

	report := summarize.Summarize(doc, *top)

	if *httpEndpoint != "" {
		if *open {
			url := fmt.Sprintf("http://localhost%s/", *httpEndpoint)
			go func() {
				time.Sleep(time.Second)
				browser.OpenURL(url)
			}()
		}

		web.Serve(*httpEndpoint, report)

		return
	}

	if *htmlPath != "" {
		w, err := os.Create(*htmlPath)
		if err != nil {
			glog.Exitf("open failed: %v", err)
		}
		defer w.Close()

		if err := web.Render(w, report); err != nil {
			glog.Fatalf("render: %v", err)
		}

		return
	}

	if *pprofPath != "" {
		w, err := os.Create(*pprofPath)
		if err != nil {
			glog.Exitf("open failed: %v", err)
		}
		defer w.Close()

		bs, err := pprof.Render(report)
		if err != nil {
			glog.Fatalf("render: %v", err)
		}

		if _, err := w.Write(bs); err != nil {
			glog.Fatalf("write: %v", err)
		}

		return
	}

	fmt.Print(text.Report(report))
}
