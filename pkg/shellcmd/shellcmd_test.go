// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package shellcmd

import (
	"strings"
	"testing"
	"time"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name           string
		cmdline        string
		expectedOutput string
	}{
		{
			name:           "echo",
			cmdline:        "echo hello world",
			expectedOutput: "hello world",
		},
		{
			name:           "trimmed",
			cmdline:        "printf '  padded  \\n\\n'",
			expectedOutput: "padded",
		},
		{
			name:           "pipe",
			cmdline:        "printf 'a\\nb\\nc\\n' | wc -l",
			expectedOutput: "3",
		},
	}

	for _, tt := range tests {
		output := Run(tt.cmdline)
		if output != tt.expectedOutput {
			t.Fatalf("%s: Run() returned %q instead of %q", tt.name, output, tt.expectedOutput)
		}
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
	}{
		{
			name:    "empty command",
			cmdline: "",
		},
		{
			name:    "missing binary",
			cmdline: "this-binary-does-not-exist-anywhere",
		},
		{
			name:    "non-zero exit",
			cmdline: "false",
		},
		{
			name:    "bad syntax",
			cmdline: "echo 'unterminated",
		},
	}

	for _, tt := range tests {
		var cmd Cmd
		cmd.Cmdline = tt.cmdline
		output := cmd.Run()
		if !IsError(output) {
			t.Fatalf("%s: Run() returned %q, expected the error marker", tt.name, output)
		}
	}
}

func TestRunTimeout(t *testing.T) {
	var cmd Cmd
	cmd.Cmdline = "while :; do :; done"
	cmd.Timeout = 100 * time.Millisecond

	start := time.Now()
	output := cmd.Run()
	elapsed := time.Since(start)

	if !IsError(output) {
		t.Fatalf("Run() returned %q, expected the error marker", output)
	}
	if !strings.Contains(output, "timed out") {
		t.Fatalf("Run() returned %q, expected a timeout message", output)
	}
	if elapsed > 5*time.Second {
		t.Fatalf("Run() took %s to give up on a %s timeout", elapsed, cmd.Timeout)
	}
}

func TestRunExecDir(t *testing.T) {
	dir := t.TempDir()
	var cmd Cmd
	cmd.Cmdline = "pwd"
	cmd.ExecDir = dir
	output := cmd.Run()
	if output != dir {
		t.Fatalf("Run() returned %q instead of %q", output, dir)
	}
}

func TestIsError(t *testing.T) {
	if IsError("plain output") {
		t.Fatal("IsError() flagged a valid output")
	}
	if !IsError(ErrorPrefix + " something broke") {
		t.Fatal("IsError() missed a marked output")
	}
}
