// SPDX-License-Identifier: EPL-2.0

// Package manager keeps the set of sounds that are currently playing and
// mixes them one frame at a time.
//
// Three kinds of goroutine touch a Manager:
//
//   - callers register samplers with Play and receive a Handle;
//   - a single dispatch goroutine, started by New, is the only writer of the
//     registry. It assigns ids, publishes new entries and, on every idle
//     tick, prunes entries whose sampler finished or whose handle was
//     released;
//   - the audio goroutine calls Mix once per output frame.
//
// The registry is an immutable slice published through an atomic pointer.
// Mix loads it once per frame and never takes a lock, so the audio goroutine
// cannot be held up by dispatch work. A new entry is visible to the first
// Mix that starts after Play returns.
//
// Example:
//
//	m := manager.New(manager.WithLogger(logger))
//	defer m.Close()
//
//	h, err := m.Play(ctx, voice)
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
//	frame := m.Mix(48000)
package manager
