// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

// Package report generates a human-readable report about the node a job runs
// on. Every fact is gathered on a best-effort basis: a probe that fails turns
// into placeholder text, never into an error that would abort the report.
package report

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gvallee/go_util/pkg/util"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/gvallee/go_hpc_diag/internal/pkg/nvidia"
	"github.com/gvallee/go_hpc_diag/internal/pkg/sched"
	"github.com/gvallee/go_hpc_diag/pkg/pathcheck"
	"github.com/gvallee/go_hpc_diag/pkg/perftest"
	"github.com/gvallee/go_hpc_diag/pkg/shellcmd"
)

const (
	// NotAvailable is the placeholder substituted for any fact that could
	// not be gathered
	NotAvailable = "Not available"

	// NotSet is the placeholder substituted for an undefined environment
	// variable
	NotSet = "Not set"

	bannerWidth = 60
	timeFormat  = "2006-01-02 15:04:05"
)

// numericPackages is the fixed list of Python packages whose presence is
// probed, the numeric stack users care about on a compute node
var numericPackages = []string{
	"numpy",
	"scipy",
	"pandas",
	"matplotlib",
	"torch",
	"tensorflow",
	"jax",
	"sklearn",
}

// PrintSection writes a section header banner
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", bannerWidth))
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("=", bannerWidth))
}

// Generate writes the full system report. start is the process entry
// timestamp, reported as the total runtime at the end of the report.
func Generate(w io.Writer, start time.Time) {
	fmt.Fprintln(w, "HPC SYSTEM INFORMATION REPORT")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(timeFormat))

	RuntimeSection(w)
	SystemSection(w)
	CPUSection(w)
	MemorySection(w)
	GPUSection(w)
	SlurmSection(w)
	StorageSection(w)
	NetworkSection(w)
	ModulesSection(w)
	PackagesSection(w)
	PerfSection(w)
	CompletionSection(w, start)
}

// RuntimeSection reports on the binary and its runtime
func RuntimeSection(w io.Writer) {
	PrintSection(w, "RUNTIME ENVIRONMENT")
	fmt.Fprintf(w, "Go Version: %s\n", runtime.Version())
	executable, err := os.Executable()
	if err != nil {
		executable = NotAvailable
	}
	fmt.Fprintf(w, "Executable: %s\n", executable)
	fmt.Fprintf(w, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Fprintf(w, "Virtual Environment: %s\n", sched.Getenv("VIRTUAL_ENV", "None"))
}

// SystemSection reports on the operating system and the machine
func SystemSection(w io.Writer) {
	PrintSection(w, "SYSTEM INFORMATION")

	platform := NotAvailable
	release := NotAvailable
	info, err := host.Info()
	if err == nil {
		platform = fmt.Sprintf("%s-%s-%s", info.Platform, info.PlatformVersion, info.KernelArch)
		release = info.KernelVersion
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = NotAvailable
	}

	fmt.Fprintf(w, "Platform: %s\n", platform)
	fmt.Fprintf(w, "System: %s\n", runtime.GOOS)
	fmt.Fprintf(w, "Release: %s\n", release)
	fmt.Fprintf(w, "Machine: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "Hostname: %s\n", hostname)
}

// CPUSection reports the logical CPU count, the detailed topology when lscpu
// is available, and the load averages
func CPUSection(w io.Writer) {
	PrintSection(w, "CPU INFORMATION")

	count, err := cpu.Counts(true)
	if err == nil {
		fmt.Fprintf(w, "CPU Count (logical): %d\n", count)
	} else {
		fmt.Fprintln(w, "CPU Count: Unable to determine")
	}

	details := shellcmd.Run("lscpu | grep -E 'Model name|Socket|Core|Thread|CPU MHz'")
	if details != "" && !shellcmd.IsError(details) {
		fmt.Fprintln(w, "\nCPU Details:")
		fmt.Fprintln(w, details)
	}

	avg, err := load.Avg()
	if err == nil {
		fmt.Fprintf(w, "\nLoad Average (1m, 5m, 15m): %.2f, %.2f, %.2f\n", avg.Load1, avg.Load5, avg.Load15)
	}
}

// MemorySection reports the memory and swap summary, falling back to the
// kernel counters when the free tool is not available
func MemorySection(w io.Writer) {
	PrintSection(w, "MEMORY INFORMATION")

	summary := shellcmd.Run("free -h | grep -E 'Mem|Swap'")
	if summary != "" && !shellcmd.IsError(summary) {
		fmt.Fprintln(w, summary)
		return
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		fmt.Fprintln(w, "Memory info not available")
		return
	}
	fmt.Fprintf(w, "MemTotal: %d kB\n", vm.Total/1024)
	fmt.Fprintf(w, "MemAvailable: %d kB\n", vm.Available/1024)
	swap, err := mem.SwapMemory()
	if err == nil {
		fmt.Fprintf(w, "SwapTotal: %d kB\n", swap.Total/1024)
	}
}

// GPUSection reports the NVIDIA cards installed on the node, their live
// utilization, and the CUDA environment
func GPUSection(w io.Writer) {
	PrintSection(w, "GPU INFORMATION")

	gpus, err := nvidia.Detect()
	if err == nil {
		fmt.Fprintln(w, "NVIDIA GPUs detected:")
		for _, gpu := range gpus {
			fmt.Fprintf(w, "%d, %s, %s, %s\n", gpu.Index, gpu.Name, gpu.DriverVersion, gpu.MemoryTotal)
		}
		utilization, err := nvidia.Utilization()
		if err == nil {
			fmt.Fprintln(w, "\nGPU Utilization:")
			fmt.Fprintln(w, utilization)
		}
	} else {
		fmt.Fprintln(w, "No NVIDIA GPUs detected or nvidia-smi not available")
	}

	fmt.Fprintf(w, "\nCUDA_HOME: %s\n", sched.Getenv("CUDA_HOME", NotSet))
	fmt.Fprintf(w, "CUDA_VISIBLE_DEVICES: %s\n", sched.Getenv("CUDA_VISIBLE_DEVICES", NotSet))
}

// SlurmSection reports the job environment set up by the scheduler and, when
// Slurm is usable on the node, the scheduler's view of the job
func SlurmSection(w io.Writer) {
	PrintSection(w, "SLURM JOB INFORMATION")

	for _, name := range sched.JobVars {
		fmt.Fprintf(w, "%s: %s\n", name, sched.Getenv(name, NotSet))
	}

	detected, version := sched.Detect()
	if !detected {
		return
	}
	if version != "" {
		fmt.Fprintf(w, "\nScheduler: slurm %s\n", version)
	} else {
		fmt.Fprintln(w, "\nScheduler: slurm")
	}
	status, err := sched.CurrentJobStatus()
	if err == nil {
		fmt.Fprintf(w, "Job Status: %s\n", status)
	}
	numJobs, err := sched.NumRunningJobs(os.Getenv("SLURM_JOB_PARTITION"))
	if err == nil {
		fmt.Fprintf(w, "Running Jobs (current user, partition): %d\n", numJobs)
	}
}

// StorageSection reports the working directory, its disk usage, and the home
// directory
func StorageSection(w io.Writer) {
	PrintSection(w, "STORAGE INFORMATION")

	cwd, err := os.Getwd()
	if err != nil {
		cwd = NotAvailable
	}
	fmt.Fprintf(w, "Current Directory: %s\n", cwd)

	usage := shellcmd.Run("df -h . | tail -1")
	if usage != "" && !shellcmd.IsError(usage) {
		fmt.Fprintln(w, "\nDisk Usage (current location):")
		fmt.Fprintln(w, usage)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = NotAvailable
	}
	fmt.Fprintf(w, "\nHome Directory: %s\n", home)

	scratch := strings.TrimSuffix(pathcheck.ScratchRoot, "/")
	if util.PathExists(scratch) {
		fmt.Fprintf(w, "Scratch Filesystem: %s\n", scratch)
	} else {
		fmt.Fprintf(w, "Scratch Filesystem: %s not present on this node\n", scratch)
	}
}

// NetworkSection reports how the node is known on the network
func NetworkSection(w io.Writer) {
	PrintSection(w, "NETWORK INFORMATION")

	fqdn := shellcmd.Run("hostname -f")
	if shellcmd.IsError(fqdn) || fqdn == "" {
		fqdn = NotAvailable
	}
	fmt.Fprintf(w, "FQDN: %s\n", fqdn)

	ip := shellcmd.Run("hostname -I | awk '{print $1}'")
	if shellcmd.IsError(ip) || ip == "" {
		ip = NotAvailable
	}
	fmt.Fprintf(w, "IP Address: %s\n", ip)
}

// ModulesSection reports the environment modules loaded in the job
func ModulesSection(w io.Writer) {
	PrintSection(w, "LOADED MODULES")

	modules := shellcmd.Run("module list 2>&1")
	if modules != "" && !shellcmd.IsError(modules) {
		fmt.Fprintln(w, modules)
	} else {
		fmt.Fprintln(w, "Module system not available or no modules loaded")
	}
}

// PackagesSection reports which of the key numeric Python packages are
// importable on the node
func PackagesSection(w io.Writer) {
	PrintSection(w, "KEY PYTHON PACKAGES")
	fmt.Fprintln(w, "Checking installed packages...")
	checkPackages(w, numericPackages)
}

func checkPackages(w io.Writer, names []string) {
	for _, name := range names {
		version, installed := probePackage(name)
		if installed {
			fmt.Fprintf(w, "  ✓ %s: %s\n", name, version)
		} else {
			fmt.Fprintf(w, "  ✗ %s: not installed\n", name)
		}
	}
}

// probePackage imports a Python package in a throwaway interpreter and
// returns its version. A missing interpreter, a missing package and a broken
// import all report the same way: not installed.
func probePackage(name string) (string, bool) {
	cmdline := fmt.Sprintf("python3 -c 'import %s; print(getattr(%s, \"__version__\", \"unknown\"))'", name, name)
	output := shellcmd.Run(cmdline)
	if shellcmd.IsError(output) || output == "" {
		return "", false
	}
	// An import may chat on stdout before the version line
	lines := strings.Split(output, "\n")
	return strings.TrimSpace(lines[len(lines)-1]), true
}

// PerfSection runs the synthetic computation test and reports its timing
func PerfSection(w io.Writer) {
	PrintSection(w, "PERFORMANCE TEST")

	fmt.Fprintln(w, "Running computation test...")
	res := perftest.Run(perftest.DefaultIterations)
	fmt.Fprintf(w, "Computation completed in %.3f seconds\n", res.Elapsed.Seconds())
	fmt.Fprintf(w, "Result checksum: %.2e\n", res.Checksum)
}

// CompletionSection closes the report with the total runtime measured from
// process entry
func CompletionSection(w io.Writer, start time.Time) {
	PrintSection(w, "JOB COMPLETION")
	fmt.Fprintln(w, "✓ System information collection completed successfully")
	fmt.Fprintf(w, "✓ Report completed at: %s\n", time.Now().Format(timeFormat))
	fmt.Fprintf(w, "✓ Total runtime: %.2f seconds\n", time.Since(start).Seconds())
}
