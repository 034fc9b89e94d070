// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package shellcmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefaultTimeout is how long a command may run before it is killed
	DefaultTimeout = 10 * time.Second

	// ErrorPrefix is the marker prepended to the output returned for any
	// command that could not complete (bad syntax, missing binary,
	// non-zero exit, timeout). Callers must treat any output carrying the
	// marker as "unavailable" and skip whatever display logic depends on it.
	ErrorPrefix = "Error:"
)

// Cmd represents a shell command line to execute on the node
type Cmd struct {
	// Cmdline is the command to run, interpreted by a POSIX shell (pipes
	// and redirections are honored)
	Cmdline string

	// Timeout bounds the execution time; DefaultTimeout when zero
	Timeout time.Duration

	// ExecDir is the directory from which to execute the command; the
	// process's current directory when empty
	ExecDir string

	// Env is the environment to use; the process's environment when nil
	Env []string
}

// Run executes the command and returns its combined standard output and
// standard error, trimmed of surrounding whitespace. It never returns an
// error: any failure is rendered as a string carrying ErrorPrefix.
func (c *Cmd) Run() string {
	if c.Cmdline == "" {
		return fmt.Sprintf("%s undefined command", ErrorPrefix)
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(c.Cmdline), "")
	if err != nil {
		return fmt.Sprintf("%s unable to parse command: %s", ErrorPrefix, err)
	}

	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	var output bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &output, &output),
	}
	if c.ExecDir != "" {
		opts = append(opts, interp.Dir(c.ExecDir))
	}
	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Sprintf("%s unable to create interpreter: %s", ErrorPrefix, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err = runner.Run(ctx, prog)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Sprintf("%s command timed out after %s", ErrorPrefix, timeout)
		}
		return fmt.Sprintf("%s %s", ErrorPrefix, err)
	}

	return strings.TrimSpace(output.String())
}

// Run executes a command line with the default timeout
func Run(cmdline string) string {
	var cmd Cmd
	cmd.Cmdline = cmdline
	return cmd.Run()
}

// IsError checks whether an output returned by Run carries the error marker
func IsError(output string) bool {
	return strings.Contains(output, ErrorPrefix)
}
