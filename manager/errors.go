// SPDX-License-Identifier: EPL-2.0

package manager

import "errors"

var (
	// ErrClosed is returned by Play once the manager has been closed
	ErrClosed = errors.New("manager is closed")

	// ErrNilSampler is returned when Play is called without a sampler
	ErrNilSampler = errors.New("sampler must not be nil")
)
