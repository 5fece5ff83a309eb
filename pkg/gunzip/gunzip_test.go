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

package gunzip

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "capture.json.gz")
	if err := os.WriteFile(in, []byte(`{"threads": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	// Stand in for the real utility; unpacking mechanics are external.
	d := &Decompressor{Command: func(in, out string) []string {
		return []string{"sh", "-c", "cat " + in + " > " + out}
	}}

	out, err := d.Run(in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if want := filepath.Join(dir, "capture.json"); out != want {
		t.Errorf("output path: got %q, want %q", out, want)
	}

	bs, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(bs) != `{"threads": []}` {
		t.Errorf("output content: got %q", bs)
	}
}

func TestRunFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "capture.json.gz")

	d := &Decompressor{Command: func(in, out string) []string {
		return []string{"sh", "-c", "echo unpack exploded >&2; exit 3"}
	}}

	_, err := d.Run(in)
	if err == nil {
		t.Fatal("want error for nonzero exit")
	}

	var de *DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("got %T, want *DiagnosticError", err)
	}
	if !strings.Contains(de.Diagnostic, "unpack exploded") {
		t.Errorf("diagnostic: got %q, want captured stderr", de.Diagnostic)
	}
	if !strings.Contains(de.Error(), "unpack exploded") {
		t.Errorf("error string: got %q, want diagnostic included", de.Error())
	}

	// The intermediate file must not have been produced.
	if _, err := os.Stat(filepath.Join(dir, "capture.json")); !os.IsNotExist(err) {
		t.Errorf("intermediate file exists after failed run")
	}
}

func TestRunOutputPathWithoutSuffix(t *testing.T) {
	d := &Decompressor{Command: func(in, out string) []string {
		return []string{"true"}
	}}

	out, err := d.Run("capture.json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "capture.json.out" {
		t.Errorf("output path: got %q, want %q", out, "capture.json.out")
	}
}

func TestPlatformCommand(t *testing.T) {
	argv := platformCommand("a.json.gz", "a.json")
	if len(argv) < 2 {
		t.Fatalf("got %v, want a shell invocation", argv)
	}
	if !strings.Contains(strings.Join(argv, " "), "a.json.gz") {
		t.Errorf("command does not reference input: %v", argv)
	}
}
