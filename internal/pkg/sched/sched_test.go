// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sched

import "testing"

func TestParseSbatchVersionOutput(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOutput string
	}{
		{
			name:           "plain",
			input:          "slurm 23.02.7",
			expectedOutput: "23.02.7",
		},
		{
			name:           "trailing newline",
			input:          "slurm 21.08.5\n",
			expectedOutput: "21.08.5",
		},
		{
			name:           "distribution build",
			input:          "slurm-wlm 22.05.8",
			expectedOutput: "22.05.8",
		},
	}

	for _, tt := range tests {
		version, err := parseSbatchVersionOutput(tt.input)
		if err != nil {
			t.Fatalf("%s: parseSbatchVersionOutput() failed: %s", tt.name, err)
		}
		if version != tt.expectedOutput {
			t.Fatalf("%s: parseSbatchVersionOutput() returned %s instead of %s", tt.name, version, tt.expectedOutput)
		}
	}
}

func TestParseSbatchVersionOutputInvalid(t *testing.T) {
	_, err := parseSbatchVersionOutput("sbatch: command not found")
	if err == nil {
		t.Fatal("parseSbatchVersionOutput() did not fail on garbage")
	}
	_, err = parseSbatchVersionOutput("")
	if err == nil {
		t.Fatal("parseSbatchVersionOutput() did not fail on empty output")
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("GO_HPC_DIAG_TEST_VAR", "some-value")
	if v := Getenv("GO_HPC_DIAG_TEST_VAR", "Not set"); v != "some-value" {
		t.Fatalf("Getenv() returned %q instead of %q", v, "some-value")
	}
	if v := Getenv("GO_HPC_DIAG_TEST_VAR_UNDEFINED", "Not set"); v != "Not set" {
		t.Fatalf("Getenv() returned %q instead of the fallback", v)
	}
	t.Setenv("GO_HPC_DIAG_TEST_VAR", "")
	if v := Getenv("GO_HPC_DIAG_TEST_VAR", "Not set"); v != "" {
		t.Fatalf("Getenv() returned %q for a variable set to the empty string", v)
	}
}
