// SPDX-License-Identifier: EPL-2.0

// Package formats bundles the file decoders used to load sample clips.
//
// Each subpackage wraps one third-party decoder:
//
//   - wav: github.com/go-audio/wav
//   - aiff: github.com/go-audio/aiff
//   - mp3: github.com/hajimehoshi/go-mp3
//   - vorbis: github.com/jfreymuth/oggvorbis
//
// Register wires all of them into a clip.Registry:
//
//	reg := formats.NewRegistry()
//	c, err := reg.Open("piano-c4.wav")
package formats
