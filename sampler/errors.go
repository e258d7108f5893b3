// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	// ErrUnknownWaveform is returned when parsing an unknown waveform name
	ErrUnknownWaveform = errors.New("unknown waveform")
)
