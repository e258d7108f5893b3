// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audsynth/clip"
	"github.com/ik5/audsynth/formats/internal/pcm"
)

// Decoder reads uncompressed AIFF files.
type Decoder struct{}

// Decode implements clip.Decoder. Non seekable readers are buffered in
// memory first because the AIFF reader needs to seek.
func (Decoder) Decode(r io.Reader) (clip.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	// AIFF stores signed samples at every depth
	return pcm.NewSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth), false)
}
