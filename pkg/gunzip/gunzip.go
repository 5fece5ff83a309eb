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

// Package gunzip shells out to the platform decompression utility
package gunzip

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// DiagnosticError carries the error stream of a failed decompression run.
type DiagnosticError struct {
	Diagnostic string
	Err        error
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("decompress: %v: %s", e.Err, e.Diagnostic)
}

func (e *DiagnosticError) Unwrap() error { return e.Err }

// Decompressor runs an external utility to unpack a .gz capture. The zero
// value picks a platform default command on first use.
type Decompressor struct {
	// Command produces the argv to unpack in into out. Overridable in tests.
	Command func(in, out string) []string
}

// Run unpacks the capture at path next to itself, returning the path of
// the produced file. A nonzero exit from the utility yields a
// *DiagnosticError holding everything it wrote to stderr.
func (d *Decompressor) Run(path string) (string, error) {
	out := strings.TrimSuffix(path, ".gz")
	if out == path {
		out = path + ".out"
	}

	command := d.Command
	if command == nil {
		command = platformCommand
	}

	argv := command(path, out)
	cmd := exec.Command(argv[0], argv[1:]...)

	stderr := bytes.NewBuffer([]byte{})
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", &DiagnosticError{Diagnostic: stderr.String(), Err: err}
	}

	return out, nil
}

func platformCommand(in, out string) []string {
	if runtime.GOOS == "windows" {
		script := fmt.Sprintf("Add-Type -AssemblyName System.IO.Compression.FileSystem; [System.IO.Compression.GZipStream]::new([System.IO.File]::OpenRead('%s'), [System.IO.Compression.CompressionMode]::Decompress) | Out-File -FilePath '%s' -Encoding UTF8", in, out)
		return []string{"powershell", "-c", script}
	}

	return []string{"sh", "-c", fmt.Sprintf("gzip -dc %q > %q", in, out)}
}
