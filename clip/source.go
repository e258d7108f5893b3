// SPDX-License-Identifier: EPL-2.0

package clip

import "io"

// Source is a decoded audio stream.
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1 = mono, 2 = stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1, 1] and
	// returns how many values (not frames) it wrote. io.EOF marks the end of
	// the stream and may come with a final n > 0.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources held by the decoder.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (Source, error)

func (f DecoderFunc) Decode(r io.Reader) (Source, error) {
	return f(r)
}
