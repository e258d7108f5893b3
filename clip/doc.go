// SPDX-License-Identifier: EPL-2.0

// Package clip turns recorded audio into playable voices.
//
// Decoding is pluggable: a Registry maps a format key such as "wav" or
// "mp3" to a Decoder, and a Decoder turns an io.Reader into a streaming
// Source of interleaved float32 samples in [-1, 1]. The decoders for wav,
// mp3, ogg vorbis and aiff live in the formats packages and are registered
// with formats.Register.
//
// A Clip is a Source read to the end and held in memory:
//
//	reg := clip.NewRegistry()
//	formats.Register(reg)
//
//	c, err := reg.Open("piano-c4.wav")
//	if err != nil {
//	    return err
//	}
//
// A Player reads a Clip at any output rate and pitch using cubic
// interpolation between neighbouring frames; it is a sampler.Generator, so
// it can be shaped by envelopes inside a sampler.Voice. ToneGenerator does
// exactly that for every note of an instrument, pitching one clip relative
// to the note it was recorded at.
package clip
