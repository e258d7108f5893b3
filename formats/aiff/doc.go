// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into clip sources using
// github.com/go-audio/aiff. Signed PCM of 8, 16, 24 and 32 bits is
// supported.
package aiff
