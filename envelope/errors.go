// SPDX-License-Identifier: EPL-2.0

package envelope

import "errors"

var (
	// ErrNegativeDuration is returned when a curve is configured with a negative duration
	ErrNegativeDuration = errors.New("curve duration must not be negative")

	// ErrPointOutOfRange is returned when a control point X is outside [0, 1]
	ErrPointOutOfRange = errors.New("curve point x must be within [0, 1]")

	// ErrPointsNotSorted is returned when control points are not in ascending X order
	ErrPointsNotSorted = errors.New("curve points must be sorted by x")

	// ErrUnknownInterpolation is returned when parsing an unknown interpolation name
	ErrUnknownInterpolation = errors.New("unknown interpolation")
)
