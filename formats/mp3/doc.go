// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into clip sources with
// github.com/hajimehoshi/go-mp3.
//
// The library emits 16-bit stereo regardless of the stream layout, so every
// source reports two channels. Mono files come out with both channels equal.
package mp3
