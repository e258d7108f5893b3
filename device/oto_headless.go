// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

// OtoDevice stands in for the system output in headless builds.
type OtoDevice = HeadlessDevice

// OpenOto starts a headless device instead of opening a sound card.
func OpenOto(m Mixer, cfg Config, opts ...Option) (*OtoDevice, error) {
	return OpenHeadless(m, cfg, opts...)
}
