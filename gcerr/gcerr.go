// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gcerr defines the error kinds used across the gctree
// inference core.
//
// Errors are plain sentinel values wrapped with fmt.Errorf and
// inspected with errors.Is, following the wrapping idiom used
// throughout the rest of the module. There is no stack-trace capturing
// error type: diagnostic context is added as wrapped text, not as a
// structured trace.
package gcerr

import "errors"

// Hard failures: the caller must abort the current operation.
var (
	// ErrInvalidInput marks malformed or out-of-range input, for
	// example an empty tree list, parameters outside [0, 1], or
	// ranking coefficients of the wrong arity.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation marks a violated data-model invariant,
	// for example an observed-name set changed by collapse, or a
	// history DAG with more than one parsimony weight class.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrZeroLikelihood marks a call to the likelihood kernel at a
	// zero-likelihood event, (c, m) = (0, 0) or (0, 1).
	ErrZeroLikelihood = errors.New("zero likelihood event")
)

// Recoverable: the caller may continue after recording the warning.
var (
	// ErrNumericWarning marks a non-fatal numerical concern: a
	// gradient check that exceeds tolerance, an optimizer that did
	// not report success, or a supercritical simulation parameter.
	ErrNumericWarning = errors.New("numeric warning")

	// ErrCapacityWarning marks a fallback triggered by the ambiguity
	// explosion guard: per-tree disambiguation was used instead of
	// DAG-wide expansion.
	ErrCapacityWarning = errors.New("capacity warning")
)

// Recoverable reports whether err is a kind of error that its source
// allows the caller to continue after recording.
func Recoverable(err error) bool {
	return errors.Is(err, ErrNumericWarning) || errors.Is(err, ErrCapacityWarning)
}
