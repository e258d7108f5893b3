// SPDX-License-Identifier: EPL-2.0

// Package device turns a Mixer into bytes an audio output understands.
//
// The output is described by a Config: sample rate, channel count and
// sample format. Only mono and stereo are supported. A mono output receives
// the average of the left and right channels, a stereo output receives left
// then right. Samples are written little endian as unsigned 16-bit, signed
// 16-bit or 32-bit float, and are clamped to [-1, 1] on the way out.
//
// Stream is the core: an io.Reader that calls Mix exactly once per frame it
// emits. Everything else is built on it:
//
//   - OtoDevice plays a Stream through github.com/ebitengine/oto/v3. Build
//     with the headless tag to replace it by a device that pulls the stream
//     in real time without touching audio hardware.
//   - RenderWAV pulls a fixed number of frames into a 16-bit PCM WAV file
//     with github.com/go-audio/wav.
//   - BeepStreamer exposes a Mixer as a github.com/gopxl/beep/v2 Streamer.
//
// A panic raised while mixing is recovered, logged, and turns the stream
// into a permanent ErrSourcePanicked error.
package device
