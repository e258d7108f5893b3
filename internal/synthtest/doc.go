// SPDX-License-Identifier: EPL-2.0

// Package synthtest holds fakes shared by the package tests: samplers with
// scripted output, a sound player that records what it was asked to play,
// and a decoded-audio source that generates its frames from a function.
package synthtest
