// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gvallee/go_hpc_diag/pkg/report"
)

func main() {
	start := time.Now()

	help := flag.Bool("h", false, "Help message")

	flag.Parse()

	cmdName := filepath.Base(os.Args[0])
	if *help {
		fmt.Printf("%s gathers and prints a report about the compute node it runs on", cmdName)
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if err := run(start); err != nil {
		fmt.Printf("\n%s\n", strings.Repeat("=", 60))
		fmt.Println("ERROR: report generation failed:")
		fmt.Printf("%s\n", err)
		fmt.Println(strings.Repeat("=", 60))
		os.Exit(1)
	}
}

// run generates the report, converting any panic along the way into an error
// so that the process boundary stays the single place dealing with failures
func run(start time.Time) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	report.Generate(os.Stdout, start)
	return nil
}
