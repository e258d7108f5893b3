// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audsynth/sampler"
	"github.com/ik5/audsynth/utils"
)

// putFrame encodes s into dst, which must hold at least c.FrameSize bytes.
// c must have been validated.
func (c Config) putFrame(dst []byte, s sampler.Sample) {
	if c.Channels == 1 {
		c.Format.put(dst, s.Average())
		return
	}
	c.Format.put(dst, s.Left)
	c.Format.put(dst[c.Format.BytesPerSample():], s.Right)
}

func (f Format) put(dst []byte, v float32) {
	switch f {
	case Int16:
		binary.LittleEndian.PutUint16(dst, uint16(utils.Float32ToInt16(v)))
	case Uint16:
		binary.LittleEndian.PutUint16(dst, utils.Float32ToUint16(v))
	default:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(utils.Clamp(v)))
	}
}
