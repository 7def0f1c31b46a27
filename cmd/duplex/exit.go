// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/aschiffer/duplex/internal/interleave"
	"github.com/aschiffer/duplex/internal/ticket"
	"github.com/aschiffer/duplex/pkg/types"
)

// Exit codes. Operators script around duplex, so the class of a failure is
// visible without parsing stderr.
const (
	exitOK            = 0
	exitMergeFailed   = 1
	exitArchiveFailed = 2
	exitConfigError   = 3
)

// exitCode classifies err. Archive failures get their own code because the
// merged output exists by the time archiving runs; configuration problems
// get another so wrappers can tell a bad invocation from a bad scan pair.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var se *interleave.StageError
	if errors.As(err, &se) && se.Stage == interleave.StageArchive {
		return exitArchiveFailed
	}
	switch {
	case errors.Is(err, types.ErrInvalidRotation),
		errors.Is(err, types.ErrInvalidTarget),
		errors.Is(err, ticket.ErrInvalid):
		return exitConfigError
	}
	return exitMergeFailed
}
