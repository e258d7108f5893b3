// SPDX-License-Identifier: EPL-2.0

package sampler

// Sample is one stereo frame. Values are nominally within [-1, 1] but sums
// are never clamped here; clipping is up to the output stage.
type Sample struct {
	Left  float32
	Right float32
}

// Mono returns a sample with v on both channels.
func Mono(v float32) Sample {
	return Sample{Left: v, Right: v}
}

// Add returns the element-wise sum of s and o.
func (s Sample) Add(o Sample) Sample {
	return Sample{Left: s.Left + o.Left, Right: s.Right + o.Right}
}

// Scale multiplies both channels by g.
func (s Sample) Scale(g float32) Sample {
	return Sample{Left: s.Left * g, Right: s.Right * g}
}

// Average folds the frame down to one channel.
func (s Sample) Average() float32 {
	return (s.Left + s.Right) / 2
}
