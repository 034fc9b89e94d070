// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package pathcheck

import "strings"

const (
	// ScratchRoot is the marker identifying the scratch filesystem where
	// jobs are expected to run
	ScratchRoot = "/scratch.hpc/"

	// badToken is the unresolved-placeholder artifact that the job
	// submission templating occasionally leaves in a generated path
	badToken = "@"
)

// Result represents the outcome of verifying a working directory path
type Result struct {
	// Valid is true when the path is under the scratch root and carries no
	// templating artifact
	Valid bool

	// HasAtSymbol is true when the path carries the '@' artifact, the
	// signature of the path substitution bug
	HasAtSymbol bool

	// Username is the user name extracted from a valid path, empty when it
	// cannot be extracted
	Username string
}

// Verify checks whether a working directory path was generated by a correct
// job submission. A path is valid when it contains ScratchRoot and no '@';
// an '@' anywhere makes the path invalid even when the scratch root matches.
func Verify(path string) Result {
	var res Result

	res.HasAtSymbol = strings.Contains(path, badToken)
	if !strings.Contains(path, ScratchRoot) || res.HasAtSymbol {
		return res
	}

	res.Valid = true
	parts := strings.Split(path, "/")
	if len(parts) >= 3 {
		res.Username = parts[2]
	}
	return res
}
