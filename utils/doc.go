// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the envelope,
// clip and device packages: interpolation between control points and
// conversion of normalized float32 samples to integer PCM.
package utils
