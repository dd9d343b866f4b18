// Copyright (C) 2020  Ambassador Labs (for Telepresence)
// Copyright (C) 2021-2022  Ambassador Labs (for ocibuild)
//
// SPDX-License-Identifier: Apache-2.0
//
// Based on
// https://github.com/datawire/ocibuild/blob/master/pkg/cliutil/term.go

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width to wrap help output to, or 0 for
// "don't wrap".
func GetTerminalWidth() int {
	// $COLUMNS wins when the shell or the user exports it.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}
	if term.IsTerminal(1) {
		// A terminal of unknown size; assume the classic width.
		return 80
	}
	// Not a terminal; leave output unwrapped for pipes and pagers.
	return 0
}
