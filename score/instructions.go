package score

import (
	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
)

var ErrBadInstruction = errors.New("bad instruction")

// Instructions are applied to the bars after splitting. Each instruction
// addresses a bar by index, a voice by index and a position in milliseconds
// from the start of that bar.
type Instructions struct {
	Clefs  []ClefInstruction  `json:"clefs,omitempty" yaml:"clefs,omitempty"`
	Lyrics []LyricInstruction `json:"lyrics,omitempty" yaml:"lyrics,omitempty"`
}

type ClefInstruction struct {
	Bar      int    `json:"bar" yaml:"bar"`
	Voice    int    `json:"voice" yaml:"voice"`
	Position int    `json:"position" yaml:"position"`
	Clef     string `json:"clef" yaml:"clef"`
}

type LyricInstruction struct {
	Bar      int    `json:"bar" yaml:"bar"`
	Voice    int    `json:"voice" yaml:"voice"`
	Position int    `json:"position" yaml:"position"`
	Text     string `json:"text" yaml:"text"`
}

func (in Instructions) Empty() bool {
	return len(in.Clefs) == 0 && len(in.Lyrics) == 0
}

// Apply returns copies of bars with the instructions applied. A clef change
// goes in front of the event starting at its position, or at the end of the
// voice when the position is the end of the bar. A lyric attaches to the
// chord starting at its position.
func Apply(bars []model.Bar, in Instructions) ([]model.Bar, error) {
	res := make([]model.Bar, len(bars))
	for i, b := range bars {
		res[i] = b.Copy()
	}
	for i, c := range in.Clefs {
		v, err := voiceAt(res, c.Bar, c.Voice)
		if err != nil {
			return nil, errors.Wrapf(err, "clef %d", i)
		}
		index, ok := v.InsertionIndex(c.Position)
		if !ok {
			return nil, errors.Wrapf(ErrBadInstruction, "clef %d: no event starts at %dms", i, c.Position)
		}
		if c.Clef == "" {
			return nil, errors.Wrapf(ErrBadInstruction, "clef %d has no clef", i)
		}
		events := make([]model.Event, 0, len(v.Events)+1)
		events = append(events, v.Events[:index]...)
		events = append(events, model.ClefChange{Clef: c.Clef})
		events = append(events, v.Events[index:]...)
		v.Events = events
	}
	for i, l := range in.Lyrics {
		v, err := voiceAt(res, l.Bar, l.Voice)
		if err != nil {
			return nil, errors.Wrapf(err, "lyric %d", i)
		}
		index, ok := chordAt(*v, l.Position)
		if !ok {
			return nil, errors.Wrapf(ErrBadInstruction, "lyric %d: no chord starts at %dms", i, l.Position)
		}
		c := v.Events[index].(model.Chord)
		c.Lyric = l.Text
		v.Events[index] = c
	}
	return res, nil
}

func voiceAt(bars []model.Bar, bar int, voice int) (*model.Voice, error) {
	if bar < 0 || bar >= len(bars) {
		return nil, errors.Wrapf(ErrBadInstruction, "no bar %d", bar)
	}
	if voice < 0 || voice >= len(bars[bar].Voices) {
		return nil, errors.Wrapf(ErrBadInstruction, "bar %d has no voice %d", bar, voice)
	}
	return &bars[bar].Voices[voice], nil
}

func chordAt(v model.Voice, position int) (int, bool) {
	for i, pos := range v.Positions() {
		if pos > position {
			break
		}
		if pos == position && v.Events[i].Kind() == model.KindChord {
			return i, true
		}
	}
	return 0, false
}
