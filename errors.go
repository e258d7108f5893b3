// SPDX-License-Identifier: EPL-2.0

package audsynth

import "errors"

var (
	// ErrRealtimeBackend is returned by Render when a device already pulls
	// the mix in real time
	ErrRealtimeBackend = errors.New("offline rendering needs the wav backend")
)
