// SPDX-License-Identifier: EPL-2.0

// Package wav decodes WAV files into clip sources.
//
// Parsing is done by github.com/go-audio/wav, so any chunk layout it
// understands is accepted. Samples must be integer PCM of 8, 16, 24 or 32
// bits; they come out as float32 in [-1, 1]:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a RIFF/WAVE stream
//	}
package wav
