package model

import (
	"github.com/pkg/errors"
)

var (
	ErrNoVoices      = errors.New("bar has no voices")
	ErrUnequalVoices = errors.New("voices in bar have different durations")
)

// Bar is a time segment holding one synchronized event list per Voice, with
// no internal barline. Position is the absolute start of the bar, in
// milliseconds from the start of the composition. All voices in a bar have
// the same duration, which is the duration of the bar.
type Bar struct {
	Position int
	Voices   []Voice
}

// Duration returns the duration of the first voice; Check verifies that the
// others agree.
func (b Bar) Duration() int {
	if len(b.Voices) == 0 {
		return 0
	}
	return b.Voices[0].Duration()
}

func (b Bar) End() int {
	return b.Position + b.Duration()
}

// Empty returns a bar that starts where b ends and has the same voices, each
// without events.
func (b Bar) Empty() Bar {
	voices := make([]Voice, len(b.Voices))
	for i, v := range b.Voices {
		voices[i] = v.WithEvents(nil)
	}
	return Bar{Position: b.End(), Voices: voices}
}

// Copy makes a copy of the bar whose voices can be changed without affecting
// the original.
func (b Bar) Copy() Bar {
	voices := make([]Voice, len(b.Voices))
	for i, v := range b.Voices {
		voices[i] = v.Copy()
	}
	return Bar{Position: b.Position, Voices: voices}
}

// Check returns an error if the bar has no voices, if any event is invalid
// or if the voices disagree on their duration.
func (b Bar) Check() error {
	if len(b.Voices) == 0 {
		return ErrNoVoices
	}
	if b.Position < 0 {
		return errors.Errorf("bar has negative position %d", b.Position)
	}
	duration := b.Duration()
	for i, v := range b.Voices {
		if err := v.Check(); err != nil {
			return errors.Wrapf(err, "voice %d", i)
		}
		if d := v.Duration(); d != duration {
			return errors.Wrapf(ErrUnequalVoices, "voice %d lasts %dms, voice 0 lasts %dms", i, d, duration)
		}
	}
	return nil
}

// Durations returns the duration of every bar.
func Durations(bars []Bar) []int {
	res := make([]int, len(bars))
	for i, b := range bars {
		res[i] = b.Duration()
	}
	return res
}
