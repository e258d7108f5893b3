// SPDX-License-Identifier: EPL-2.0

// Package envelope implements the five-stage amplitude envelope that shapes
// every voice: attack, hold, decay, sustain and release.
//
// # Curves
//
// Each stage is a Curve built from a CurveConfig: a duration plus control
// points interpolated linearly, with a Catmull-Rom spline, or in steps. A
// curve is driven by the absolute frame number of its envelope and reports
// exhaustion once its duration has elapsed:
//
//	c := envelope.NewCurve(envelope.Ramp(10*time.Millisecond, 0, 1))
//	v, ok := c.Advance(frame, 48000)
//
// Sampling includes both endpoints, so a ramp from 0 to 1 yields exactly 0
// on its first frame and exactly 1 on its last.
//
// # Envelopes
//
// An Envelope is advanced once per output frame with Next. Stages follow
// each other within the same call, so no frame is lost on a transition:
//
//	state := envelope.NewState()
//	env := envelope.New(envelope.ADSR(5*time.Millisecond, 50*time.Millisecond, 1, 0.6, 200*time.Millisecond), state)
//	for {
//	    amp, ok := env.Next(48000)
//	    if !ok {
//	        break // completed
//	    }
//	    _ = amp
//	}
//
// # Playing state
//
// State is shared by an envelope and the controller of its voice. The
// controller calls Stop or Sustain; the envelope notices a stop before its
// hold, decay and sustain stages and jumps to release, re-anchoring the
// release curve on the last amplitude it emitted so there is no click.
// The attack stage ignores stop requests and always runs to completion.
//
// When the release curve ends the envelope moves the state to Stopped and
// closes State.Done. No other code path can reach Stopped.
package envelope
