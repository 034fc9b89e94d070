// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package nvidia

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gvallee/go_hpc_diag/pkg/shellcmd"
)

const (
	staticQueryCmd      = "nvidia-smi --query-gpu=index,name,driver_version,memory.total --format=csv,noheader"
	utilizationQueryCmd = "nvidia-smi --query-gpu=index,utilization.gpu,utilization.memory,temperature.gpu --format=csv,noheader"
)

// GPU represents one card reported by nvidia-smi
type GPU struct {
	Index         int
	Name          string
	DriverVersion string
	MemoryTotal   string
}

// Detect queries nvidia-smi for the cards installed on the node. An error is
// returned when nvidia-smi is not available or reports no card; callers are
// expected to treat that as "no GPU" rather than a failure.
func Detect() ([]GPU, error) {
	output := shellcmd.Run(staticQueryCmd)
	if shellcmd.IsError(output) || output == "" {
		return nil, fmt.Errorf("no NVIDIA GPU detected or nvidia-smi not available")
	}
	return parseQueryOutput(output)
}

// Utilization returns the live per-card utilization rows reported by
// nvidia-smi, one card per line
func Utilization() (string, error) {
	output := shellcmd.Run(utilizationQueryCmd)
	if shellcmd.IsError(output) || output == "" {
		return "", fmt.Errorf("unable to query GPU utilization")
	}
	return output, nil
}

// parseQueryOutput parses the CSV rows returned by a
// 'nvidia-smi --query-gpu=index,name,driver_version,memory.total' command
func parseQueryOutput(output string) ([]GPU, error) {
	var gpus []GPU
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("invalid nvidia-smi output format: %s", line)
		}
		idx, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid GPU index in: %s", line)
		}
		var gpu GPU
		gpu.Index = idx
		gpu.Name = strings.TrimSpace(fields[1])
		gpu.DriverVersion = strings.TrimSpace(fields[2])
		gpu.MemoryTotal = strings.TrimSpace(fields[3])
		gpus = append(gpus, gpu)
	}
	if len(gpus) == 0 {
		return nil, fmt.Errorf("nvidia-smi returned no card")
	}
	return gpus, nil
}
