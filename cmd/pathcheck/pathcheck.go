// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gvallee/go_util/pkg/util"

	"github.com/gvallee/go_hpc_diag/internal/pkg/sched"
	"github.com/gvallee/go_hpc_diag/pkg/pathcheck"
)

func main() {
	help := flag.Bool("h", false, "Help message")

	flag.Parse()

	cmdName := filepath.Base(os.Args[0])
	if *help {
		fmt.Printf("%s verifies that the job runs in a correctly generated working directory", cmdName)
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("PATH VERIFICATION TEST")
	fmt.Println(strings.Repeat("=", 60))

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("unable to detect the current directory: %s", err)
	}
	fmt.Printf("\nCurrent Working Directory: %s\n", cwd)

	res := pathcheck.Verify(cwd)
	if res.Valid {
		fmt.Println("✅ Path looks correct! (no @ symbol in path)")
		if res.Username != "" {
			fmt.Printf("✅ Detected username: %s\n", res.Username)
		}
	} else {
		fmt.Println("❌ WARNING: Path might be incorrect!")
		if res.HasAtSymbol {
			fmt.Println("   → Found @ symbol in path - this is the bug!")
		}
	}

	jobID := sched.Getenv("SLURM_JOB_ID", "N/A")
	submitDir := sched.Getenv("SLURM_SUBMIT_DIR", "N/A")
	fmt.Printf("\nSLURM Job ID: %s\n", jobID)
	fmt.Printf("SLURM Submit Dir: %s\n", submitDir)
	if submitDir != "N/A" && !util.PathExists(submitDir) {
		fmt.Println("⚠ Submit directory no longer exists")
	}

	fmt.Println("\nFiles in current directory:")
	entries, err := os.ReadDir(".")
	if err != nil {
		log.Fatalf("unable to list the current directory: %s", err)
	}
	for _, entry := range entries {
		fmt.Printf("  - %s\n", entry.Name())
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Println("TEST COMPLETED")
	fmt.Println(strings.Repeat("=", 60))

	os.Exit(0)
}
