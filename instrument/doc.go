// SPDX-License-Identifier: EPL-2.0

// Package instrument is the voice control surface: it turns note on, note
// off and sustain pedal events into voices registered with a Player.
//
// A ToneGenerator builds the sampler for a note. Every envelope it creates
// takes its playing state from the Controller it is handed, so the
// instrument can later stop, sustain or query the voice as a whole.
//
//	inst := instrument.New(mgr, instrument.Synth{
//	    Waveform: sampler.Saw,
//	    Envelope: envelope.ADSR(5*time.Millisecond, 100*time.Millisecond, 1, 0.6, 300*time.Millisecond),
//	    Gain:     0.4,
//	})
//	defer inst.Close(ctx)
//
//	inst.PlayNote(ctx, instrument.Note{Step: 60, Loudness: instrument.MezzoForte})
//	inst.StopNote(60)
//
// Removing a voice never cuts it off. The voice is told to stop and a
// watcher goroutine releases its playback handle only after every one of
// its envelopes has finished its release.
package instrument
