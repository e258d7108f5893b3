// SPDX-License-Identifier: EPL-2.0

// Package config loads engine settings from YAML and the environment.
//
// Load starts from Default, merges the YAML file when a path is given and
// then applies AUDSYNTH_* environment variables on top:
//
//	device:
//	  backend: oto        # oto, headless or wav
//	  sample_rate: 48000
//	  channels: 2
//	  format: f32         # f32, i16 or u16
//	  buffer_ms: 20
//	engine:
//	  dispatch_interval_ms: 10
//	logging:
//	  level: debug
//	  format: json
//	envelope:
//	  attack: {duration_ms: 5, points: [{x: 0, y: 0}, {x: 1, y: 1}]}
//	  release: {duration_ms: 300, interpolation: cubic, points: [{x: 0, y: 0.8}, {x: 1, y: 0}]}
//	instrument:
//	  waveform: saw
//	  gain: 0.3
//
// The converters turn each section into the types the engine packages
// take, so validation of units and names happens in one place.
package config
