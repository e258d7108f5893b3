// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	// ErrUnsupportedChannels is returned for any channel count other than 1 or 2
	ErrUnsupportedChannels = errors.New("only mono and stereo output is supported")

	// ErrUnsupportedFormat is returned for a sample format the output cannot take
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrInvalidSampleRate is returned when the sample rate is zero
	ErrInvalidSampleRate = errors.New("sample rate must be positive")

	// ErrSourcePanicked is returned by a stream after its mixer panicked
	ErrSourcePanicked = errors.New("mixer panicked")

	// ErrContextInUse is returned when the process wide output context is
	// already open with a different configuration
	ErrContextInUse = errors.New("audio context already open with another configuration")
)
