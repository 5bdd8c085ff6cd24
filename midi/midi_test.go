package midi

import (
	"path/filepath"
	"testing"

	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/split"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

type note struct {
	tick uint32
	on   bool
	key  uint8
}

func notes(tr smf.Track) []note {
	var res []note
	var tick uint32
	for _, ev := range tr {
		tick += ev.Delta
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
			res = append(res, note{tick: tick, on: true, key: key})
		case ev.Message.GetNoteOff(&ch, &key, &vel):
			res = append(res, note{tick: tick, on: false, key: key})
		}
	}
	return res
}

func render(t *testing.T, bars []model.Bar) *smf.SMF {
	path := filepath.Join(t.TempDir(), "bars.mid")
	require.NoError(t, WriteFile(path, bars))
	s, err := ReadFile(path)
	require.NoError(t, err)
	return s
}

func TestTruncatedChordSoundsThroughBarline(t *testing.T) {
	main := model.Bar{Voices: []model.Voice{
		{Name: "piano", Events: []model.Event{model.NewChord(1, model.Notes{60}, 90, 1500), model.Rest{Dur: 500}}},
		{Channel: 1, Events: []model.Event{model.Rest{Dur: 1000}, model.Rest{Dur: 1000}}},
	}}
	bars, err := split.SplitIntoBars(main, []int{1000})
	require.NoError(t, err)

	s := render(t, bars)

	assert := assert.New(t)
	assert.Equal(smf.MetricTicks(TicksPerQuarter), s.TimeFormat)
	require.Len(t, s.Tracks, 3)
	assert.Equal([]note{{0, true, 60}, {1500, false, 60}}, notes(s.Tracks[1]))
	assert.Empty(notes(s.Tracks[2]))

	var bpm float64
	var foundTempo bool
	for _, ev := range s.Tracks[0] {
		if ev.Message.GetMetaTempo(&bpm) {
			foundTempo = true
		}
	}
	assert.True(foundTempo)
	assert.InDelta(float64(Tempo), bpm, 0.01)
}

func TestSubEventsPlayInTurn(t *testing.T) {
	c := model.Chord{ID: 1, Pitches: model.Notes{60}, SubEvents: []model.BasicSubEvent{
		{Pitches: model.Notes{62}, Velocities: []uint8{50}, Duration: 100},
		{Pitches: model.Notes{60, 64}, Velocities: []uint8{80, 80}, Duration: 400},
	}}
	bars := []model.Bar{{Position: 2000, Voices: []model.Voice{{Events: []model.Event{c, model.ClefChange{Clef: "bass"}}}}}}

	s := render(t, bars)

	assert.Equal(t, []note{
		{0, true, 62},
		{100, false, 62},
		{100, true, 60},
		{100, true, 64},
		{500, false, 60},
		{500, false, 64},
	}, notes(s.Tracks[1]))
}

func TestRenderRejectsNoBars(t *testing.T) {
	_, err := Render(nil)
	assert.Error(t, err)
}

func TestRenderRejectsChannelAbove15(t *testing.T) {
	bars := []model.Bar{{Voices: []model.Voice{{Channel: 16, Events: []model.Event{model.Rest{Dur: 100}}}}}}
	_, err := Render(bars)
	assert.Error(t, err)
}
