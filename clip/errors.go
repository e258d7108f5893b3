// SPDX-License-Identifier: EPL-2.0

package clip

import "errors"

var (
	// ErrUnknownFormat is returned when no decoder is registered for a format
	ErrUnknownFormat = errors.New("no decoder registered for format")

	// ErrEmptyClip is returned when a source produced no samples
	ErrEmptyClip = errors.New("clip has no samples")

	// ErrInvalidLayout is returned for a source with no channels or no sample rate
	ErrInvalidLayout = errors.New("source must have a positive sample rate and channel count")
)
