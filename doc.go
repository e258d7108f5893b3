// SPDX-License-Identifier: EPL-2.0

// Package audsynth is a real-time software synthesizer core.
//
// An Engine ties the pieces together: notes are turned into voices by a
// tone generator, voices are shaped by envelopes, the manager mixes every
// active voice once per output frame and a device backend pulls the mix.
//
// # Quick Start
//
//	cfg, err := config.Load("synth.yaml")
//	if err != nil {
//	    // handle error
//	}
//
//	eng, err := audsynth.Open(cfg, nil)
//	if err != nil {
//	    // handle error
//	}
//	defer eng.Close(context.Background())
//
//	eng.PlayNote(ctx, instrument.Note{Step: 60})
//	time.Sleep(time.Second)
//	eng.StopNote(60)
//
// A nil tone generator builds one from the configuration: an oscillator by
// default, or a decoded sample clip when instrument.clip is set.
//
// # Backends
//
// The device.backend setting picks where the mix goes:
//   - oto: the system audio output via github.com/ebitengine/oto/v3
//   - headless: pulled at real time pace and discarded
//   - wav: nothing pulls in real time; Render writes the mix to a WAV file
//
// # Packages
//
//   - envelope: curves, the five stage envelope and the shared playing state
//   - sampler: the Sampler contract, oscillators and voices
//   - manager: the voice registry, the dispatch goroutine and the mix
//   - instrument: notes, the sustain pedal and graceful voice shutdown
//   - clip, formats: decoded sample clips as tone sources
//   - device: encoding the mix for oto, beep and WAV output
//   - config: YAML and environment configuration
package audsynth
