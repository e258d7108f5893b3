// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"github.com/ik5/audsynth/clip"
	"github.com/ik5/audsynth/formats/aiff"
	"github.com/ik5/audsynth/formats/mp3"
	"github.com/ik5/audsynth/formats/vorbis"
	"github.com/ik5/audsynth/formats/wav"
)

// Format keys used by Register.
const (
	WAV    = "wav"
	MP3    = "mp3"
	Vorbis = "ogg"
	AIFF   = "aiff"
)

// Register adds every bundled decoder to r along with its usual file
// extensions.
func Register(r *clip.Registry) {
	r.Register(WAV, wav.Decoder{}, "wav", "wave")
	r.Register(MP3, mp3.Decoder{}, "mp3")
	r.Register(Vorbis, vorbis.Decoder{}, "ogg", "oga")
	r.Register(AIFF, aiff.Decoder{}, "aif", "aiff")
}

// NewRegistry returns a registry with every bundled decoder registered.
func NewRegistry() *clip.Registry {
	r := clip.NewRegistry()
	Register(r)
	return r
}
