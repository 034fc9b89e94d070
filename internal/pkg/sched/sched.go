// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package sched

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"strings"

	"github.com/gvallee/go_exec/pkg/advexec"
	"github.com/gvallee/go_hpcjob/pkg/hpcjob"
	"github.com/gvallee/go_slurm/pkg/slurm"
)

// JobVars is the fixed list of Slurm variables describing the current job
var JobVars = []string{
	"SLURM_JOB_ID",
	"SLURM_JOB_NAME",
	"SLURM_JOB_NODELIST",
	"SLURM_JOB_PARTITION",
	"SLURM_CPUS_PER_TASK",
	"SLURM_CPUS_ON_NODE",
	"SLURM_MEM_PER_NODE",
	"SLURM_GPUS",
	"SLURM_SUBMIT_DIR",
}

// Getenv returns the value of an environment variable, or fallback when the
// variable is not set. A variable set to the empty string is reported as is.
func Getenv(name string, fallback string) string {
	value, defined := os.LookupEnv(name)
	if !defined {
		return fallback
	}
	return value
}

// Detect figures out whether Slurm is usable on the node and, if so, which
// version is installed
func Detect() (bool, string) {
	binPath, err := exec.LookPath("sbatch")
	if err != nil {
		return false, ""
	}

	var versionCmd advexec.Advcmd
	versionCmd.BinPath = binPath
	versionCmd.CmdArgs = append(versionCmd.CmdArgs, "--version")
	res := versionCmd.Run()
	if res.Err != nil {
		return true, ""
	}
	version, err := parseSbatchVersionOutput(res.Stdout)
	if err != nil {
		return true, ""
	}
	return true, version
}

// parseSbatchVersionOutput extracts the Slurm version from the output of a
// 'sbatch --version' command
func parseSbatchVersionOutput(output string) (string, error) {
	line := strings.TrimSpace(output)
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "slurm") {
		return "", fmt.Errorf("invalid output format")
	}
	return fields[1], nil
}

// JobStatus returns the scheduler's view of a set of jobs
func JobStatus(jobIDs []int) ([]hpcjob.Status, error) {
	if len(jobIDs) == 0 {
		return nil, fmt.Errorf("no job ID")
	}
	return slurm.JobStatus(jobIDs)
}

// CurrentJobStatus returns the status of the job this process runs in, based
// on the SLURM_JOB_ID variable
func CurrentJobStatus() (string, error) {
	idStr := os.Getenv("SLURM_JOB_ID")
	if idStr == "" {
		return "", fmt.Errorf("not running inside a Slurm job")
	}
	jobID, err := strconv.Atoi(idStr)
	if err != nil {
		return "", fmt.Errorf("invalid job ID: %s", idStr)
	}
	statuses, err := JobStatus([]int{jobID})
	if err != nil {
		return "", fmt.Errorf("unable to retrieve the job status: %s", err)
	}
	if len(statuses) == 0 {
		return "", fmt.Errorf("no status for job %d", jobID)
	}
	return statuses[0].Str, nil
}

// NumRunningJobs returns how many jobs the current user already has on a
// given partition
func NumRunningJobs(partition string) (int, error) {
	if partition == "" {
		return 0, fmt.Errorf("undefined partition")
	}
	u, err := user.Current()
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve the user ID: %s", err)
	}
	return slurm.GetNumJobs(partition, u.Username)
}
