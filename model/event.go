package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInvalidEvent = errors.New("invalid event")

type Kind uint8

const (
	KindChord Kind = iota
	KindRest
	KindClef
	KindCautionary
)

func (k Kind) String() string {
	switch k {
	case KindChord:
		return "chord"
	case KindRest:
		return "rest"
	case KindClef:
		return "clef"
	case KindCautionary:
		return "cautionary"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one timed unit of a Voice. The set of implementations is closed:
// Chord, Rest, ClefChange and CautionaryChord. Events are values and are
// never modified once they are part of a Voice; operations that change an
// event return a new one.
type Event interface {
	Duration() int
	Kind() Kind
	event()
}

// Rest is atomic silence.
type Rest struct {
	Dur int
}

func (r Rest) Duration() int { return r.Dur }
func (Rest) Kind() Kind      { return KindRest }
func (Rest) event()          {}

// ClefChange takes no time. It never straddles a barline.
type ClefChange struct {
	Clef string
}

func (ClefChange) Duration() int { return 0 }
func (ClefChange) Kind() Kind    { return KindClef }
func (ClefChange) event()        {}

// CautionaryChord continues a Chord that the previous barline cut short. It
// carries the notated pitches so the continuation can be drawn as a tie.
type CautionaryChord struct {
	Echoes  ChordID
	Pitches Notes
	Dur     int
}

func (c CautionaryChord) Duration() int { return c.Dur }
func (CautionaryChord) Kind() Kind      { return KindCautionary }
func (CautionaryChord) event()          {}

// CheckEvent returns an error wrapping ErrInvalidEvent if e breaks one of the
// per-event duration rules.
func CheckEvent(e Event) error {
	switch t := e.(type) {
	case Chord:
		if len(t.SubEvents) == 0 {
			return errors.Wrap(ErrInvalidEvent, "chord has no sub-events")
		}
		for i, s := range t.SubEvents {
			if s.Duration < 1 {
				return errors.Wrapf(ErrInvalidEvent, "chord sub-event %d has duration %d", i, s.Duration)
			}
			if len(s.Velocities) != len(s.Pitches) {
				return errors.Wrapf(ErrInvalidEvent, "chord sub-event %d has %d pitches but %d velocities", i, len(s.Pitches), len(s.Velocities))
			}
		}
		if t.DurationToNextBarline != nil && *t.DurationToNextBarline != t.Duration() {
			return errors.Wrapf(ErrInvalidEvent, "chord duration %d disagrees with duration to next barline %d", t.Duration(), *t.DurationToNextBarline)
		}
	case Rest:
		if t.Dur < 1 {
			return errors.Wrapf(ErrInvalidEvent, "rest has duration %d", t.Dur)
		}
	case ClefChange:
		if t.Clef == "" {
			return errors.Wrap(ErrInvalidEvent, "clef change has no clef")
		}
	case CautionaryChord:
		if t.Dur < 1 {
			return errors.Wrapf(ErrInvalidEvent, "cautionary chord has duration %d", t.Dur)
		}
	default:
		panic(fmt.Sprintf("unknown event type %T", e))
	}
	return nil
}
