// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"
	"math"
	"strings"
)

// Loudness is the dynamic a note is played at.
type Loudness int

const (
	MezzoForte Loudness = iota
	Fortissimo
	Pianissimo
)

func (l Loudness) String() string {
	switch l {
	case Fortissimo:
		return "ff"
	case MezzoForte:
		return "mf"
	case Pianissimo:
		return "pp"
	default:
		return fmt.Sprintf("Loudness(%d)", int(l))
	}
}

// Gain maps the dynamic to a linear amplitude factor.
func (l Loudness) Gain() float32 {
	switch l {
	case Fortissimo:
		return 1
	case Pianissimo:
		return 0.25
	default:
		return 0.5
	}
}

// ParseLoudness accepts the usual abbreviations or the full Italian names.
func ParseLoudness(name string) (Loudness, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ff", "fortissimo":
		return Fortissimo, nil
	case "mf", "mezzoforte", "mezzo-forte", "":
		return MezzoForte, nil
	case "pp", "pianissimo":
		return Pianissimo, nil
	default:
		return MezzoForte, fmt.Errorf("%w: %q", ErrUnknownLoudness, name)
	}
}

// Note is a key press. Step is the MIDI note number; 69 is A4.
type Note struct {
	Step     uint8
	Loudness Loudness
}

// Frequency returns the equal temperament pitch of the note with A4 at 440 Hz.
func (n Note) Frequency() float64 {
	return StepFrequency(float64(n.Step))
}

// StepFrequency returns the pitch of a possibly fractional MIDI step.
func StepFrequency(step float64) float64 {
	return 440 * math.Pow(2, (step-69)/12)
}

func (n Note) String() string {
	return fmt.Sprintf("step %d (%v)", n.Step, n.Loudness)
}
