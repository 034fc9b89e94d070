// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package nvidia

import "testing"

func TestParseQueryOutput(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOutput []GPU
	}{
		{
			name:  "single card",
			input: "0, NVIDIA A100-SXM4-40GB, 535.104.05, 40960 MiB",
			expectedOutput: []GPU{
				{Index: 0, Name: "NVIDIA A100-SXM4-40GB", DriverVersion: "535.104.05", MemoryTotal: "40960 MiB"},
			},
		},
		{
			name: "multiple cards",
			input: `0, Tesla V100-PCIE-16GB, 470.57.02, 16160 MiB
1, Tesla V100-PCIE-16GB, 470.57.02, 16160 MiB`,
			expectedOutput: []GPU{
				{Index: 0, Name: "Tesla V100-PCIE-16GB", DriverVersion: "470.57.02", MemoryTotal: "16160 MiB"},
				{Index: 1, Name: "Tesla V100-PCIE-16GB", DriverVersion: "470.57.02", MemoryTotal: "16160 MiB"},
			},
		},
	}

	for _, tt := range tests {
		gpus, err := parseQueryOutput(tt.input)
		if err != nil {
			t.Fatalf("%s: parseQueryOutput() failed: %s", tt.name, err)
		}
		if len(gpus) != len(tt.expectedOutput) {
			t.Fatalf("%s: parseQueryOutput() returned %d cards instead of %d", tt.name, len(gpus), len(tt.expectedOutput))
		}
		for i := range gpus {
			if gpus[i] != tt.expectedOutput[i] {
				t.Fatalf("%s: parseQueryOutput() returned %+v instead of %+v", tt.name, gpus[i], tt.expectedOutput[i])
			}
		}
	}
}

func TestParseQueryOutputInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "truncated row",
			input: "0, NVIDIA A100-SXM4-40GB",
		},
		{
			name:  "non-numeric index",
			input: "zero, NVIDIA A100-SXM4-40GB, 535.104.05, 40960 MiB",
		},
		{
			name:  "blank output",
			input: "\n\n",
		},
	}

	for _, tt := range tests {
		_, err := parseQueryOutput(tt.input)
		if err == nil {
			t.Fatalf("%s: parseQueryOutput() did not fail", tt.name)
		}
	}
}
