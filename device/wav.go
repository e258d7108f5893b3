// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audsynth/utils"
)

const (
	wavBitDepth  = 16
	wavPCMFormat = 1
	renderChunk  = 4096 // frames per encoder write
)

// RenderWAV pulls frames frames from m and writes them to w as a 16-bit PCM
// WAV file. cfg.Format is ignored: the file is always 16-bit.
func RenderWAV(w io.WriteSeeker, m Mixer, cfg Config, frames int) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	enc := wav.NewEncoder(w, int(cfg.SampleRate), wavBitDepth, cfg.Channels, wavPCMFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: cfg.Channels, SampleRate: int(cfg.SampleRate)},
		Data:           make([]int, 0, renderChunk*cfg.Channels),
		SourceBitDepth: wavBitDepth,
	}

	for done := 0; done < frames; {
		n := min(renderChunk, frames-done)
		buf.Data = buf.Data[:0]
		for range n {
			s := m.Mix(cfg.SampleRate)
			if cfg.Channels == 1 {
				buf.Data = append(buf.Data, int(utils.Float32ToInt16(s.Average())))
				continue
			}
			buf.Data = append(buf.Data,
				int(utils.Float32ToInt16(s.Left)),
				int(utils.Float32ToInt16(s.Right)),
			)
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav frames: %w", err)
		}
		done += n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}
