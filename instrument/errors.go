// SPDX-License-Identifier: EPL-2.0

package instrument

import "errors"

var (
	// ErrUnknownLoudness is returned when parsing an unknown loudness name
	ErrUnknownLoudness = errors.New("unknown loudness")

	// ErrClosed is returned by PlayNote after Close
	ErrClosed = errors.New("instrument is closed")
)
