// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into clip sources using
// github.com/jfreymuth/oggvorbis. The stream's own channel count and sample
// rate are reported unchanged.
package vorbis
