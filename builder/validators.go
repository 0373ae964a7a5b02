// SPDX-License-Identifier: MIT
// Package: ivpbuild/builder
//
// validators.go - parameter checks shared by the constructors.

package builder

import "math"

// validateMin ensures got >= min.
func validateMin(method, what string, got, min int) error {
	if got < min {
		return builderErrorf(method, "%s must be >= %d, got %d: %w", what, min, got, ErrJob)
	}
	return nil
}

// validateNonNegative ensures v is a finite value >= 0.
func validateNonNegative(method, what string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return builderErrorf(method, "%s must be finite and >= 0, got %v: %w", what, v, ErrJob)
	}
	return nil
}

// validatePositive ensures v is a finite value > 0.
func validatePositive(method, what string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return builderErrorf(method, "%s must be finite and > 0, got %v: %w", what, v, ErrJob)
	}
	return nil
}
