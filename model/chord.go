package model

type Notes = []uint8

// ChordID identifies a Chord across bars so that a CautionaryChord can point
// back at the chord it continues. Zero means unassigned.
type ChordID uint32

// BasicSubEvent is the smallest indivisible timed unit inside a Chord. Chords
// with more than one sub-event play them one after another (ornaments, grace
// notes and the like).
type BasicSubEvent struct {
	Pitches    Notes
	Velocities []uint8
	Duration   int
}

// Chord is a pitched Event. Its duration is the sum of its sub-event
// durations, so the two can never drift apart.
type Chord struct {
	ID ChordID

	// Pitches are the notated pitches, echoed by cautionary chords.
	Pitches   Notes
	SubEvents []BasicSubEvent

	// DurationToNextBarline is set when a barline cut the chord short.
	DurationToNextBarline *int

	Lyric string
}

// NewChord returns a chord with a single sub-event sounding all pitches at the
// same velocity for the whole duration.
func NewChord(id ChordID, pitches Notes, velocity uint8, duration int) Chord {
	velocities := make([]uint8, len(pitches))
	for i := range velocities {
		velocities[i] = velocity
	}
	notated := make(Notes, len(pitches))
	copy(notated, pitches)
	return Chord{
		ID:      id,
		Pitches: notated,
		SubEvents: []BasicSubEvent{{
			Pitches:    notated,
			Velocities: velocities,
			Duration:   duration,
		}},
	}
}

func (c Chord) Duration() int {
	var total int
	for _, s := range c.SubEvents {
		total += s.Duration
	}
	return total
}

func (Chord) Kind() Kind { return KindChord }

// Truncated reports whether a barline cut this chord short.
func (c Chord) Truncated() bool {
	return c.DurationToNextBarline != nil
}

// Weights returns the sub-event durations, the chord's basic chord profile.
func (c Chord) Weights() []int {
	res := make([]int, len(c.SubEvents))
	for i, s := range c.SubEvents {
		res[i] = s.Duration
	}
	return res
}

// WithSubEvents returns a copy of the chord using the given sub-events. The
// receiver is left untouched.
func (c Chord) WithSubEvents(subEvents []BasicSubEvent) Chord {
	c.SubEvents = subEvents
	return c
}

func (Chord) event() {}
