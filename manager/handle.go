// SPDX-License-Identifier: EPL-2.0

package manager

import "sync/atomic"

// Handle identifies a registered sound. Releasing it silences the sound
// immediately and lets the dispatch goroutine drop it on its next tick.
type Handle struct {
	id       uint64
	released atomic.Bool
}

// ID is the registry id assigned at registration. Ids wrap on overflow.
func (h *Handle) ID() uint64 { return h.id }

// Release marks the sound for removal. It is safe to call more than once.
func (h *Handle) Release() {
	h.released.Store(true)
}

// Released reports whether Release was called.
func (h *Handle) Released() bool {
	return h.released.Load()
}
