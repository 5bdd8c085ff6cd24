package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVoicePositions(t *testing.T) {
	v := Voice{Events: []Event{
		Rest{Dur: 100},
		ClefChange{Clef: "alto"},
		NewChord(1, Notes{60, 67}, 80, 250),
		CautionaryChord{Echoes: 1, Dur: 50},
	}}

	assert := assert.New(t)
	assert.Equal([]int{0, 100, 100, 350}, v.Positions())
	assert.Equal(400, v.Duration())
}

func TestVoiceInsertionIndex(t *testing.T) {
	v := Voice{Events: []Event{Rest{Dur: 100}, Rest{Dur: 200}}}
	cases := []struct {
		position int
		index    int
		ok       bool
	}{
		{0, 0, true},
		{100, 1, true},
		{300, 2, true},
		{150, 0, false},
		{400, 0, false},
	}
	for _, c := range cases {
		index, ok := v.InsertionIndex(c.position)
		assert.Equal(t, c.ok, ok, "position %d", c.position)
		assert.Equal(t, c.index, index, "position %d", c.position)
	}
}

func TestChordDurationIsSumOfSubEvents(t *testing.T) {
	c := NewChord(3, Notes{60}, 100, 300)
	c = c.WithSubEvents(append(c.SubEvents, BasicSubEvent{Pitches: Notes{62}, Velocities: []uint8{90}, Duration: 20}))

	assert := assert.New(t)
	assert.Equal(320, c.Duration())
	assert.Equal([]int{300, 20}, c.Weights())
	assert.False(c.Truncated())
	assert.Equal(KindChord, c.Kind())
}

func TestCheckEvent(t *testing.T) {
	twenty := 20
	invalid := []Event{
		Rest{Dur: 0},
		CautionaryChord{Dur: -5},
		ClefChange{},
		Chord{},
		Chord{SubEvents: []BasicSubEvent{{Pitches: Notes{60}, Velocities: []uint8{1}, Duration: 0}}},
		Chord{SubEvents: []BasicSubEvent{{Pitches: Notes{60}, Duration: 10}}},
		Chord{SubEvents: []BasicSubEvent{{Duration: 10}}, DurationToNextBarline: &twenty},
	}
	for _, e := range invalid {
		assert.ErrorIs(t, CheckEvent(e), ErrInvalidEvent, "%#v", e)
	}
	assert.NoError(t, CheckEvent(NewChord(1, Notes{60}, 1, 1)))
}

func TestBarCheck(t *testing.T) {
	assert := assert.New(t)
	assert.ErrorIs(Bar{}.Check(), ErrNoVoices)

	unequal := Bar{Voices: []Voice{
		{Events: []Event{Rest{Dur: 100}}},
		{Events: []Event{Rest{Dur: 90}}},
	}}
	assert.ErrorIs(unequal.Check(), ErrUnequalVoices)

	invalid := Bar{Voices: []Voice{{Events: []Event{Rest{Dur: 0}}}}}
	assert.ErrorIs(invalid.Check(), ErrInvalidEvent)
}

func TestBarEmptyStartsAtEnd(t *testing.T) {
	b := Bar{Position: 200, Voices: []Voice{
		{Channel: 3, Name: "flute", Events: []Event{Rest{Dur: 100}}},
	}}
	empty := b.Empty()

	assert := assert.New(t)
	assert.Equal(300, empty.Position)
	assert.Equal(0, empty.Duration())
	assert.Equal("flute", empty.Voices[0].Name)
	assert.Equal(uint8(3), empty.Voices[0].Channel)
	assert.NoError(empty.Check())
}

func TestIDAllocator(t *testing.T) {
	a := NewIDAllocator(10)

	assert := assert.New(t)
	assert.Equal(ChordID(10), a.Last())
	assert.Equal(ChordID(11), a.Next())
	assert.Equal(ChordID(12), a.Next())
	assert.Equal(ChordID(12), a.Last())
	assert.Equal("cautionary", KindCautionary.String())
}
