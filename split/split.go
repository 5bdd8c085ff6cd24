// Package split cuts a main bar holding a whole composition into bars at
// given barline positions. Events straddling a barline are split: rests into
// two rests, chords into a truncated chord followed by a cautionary chord in
// the next bar. Durations are conserved exactly.
package split

import (
	"fmt"

	"github.com/jsphweid/barline/boundary"
	"github.com/jsphweid/barline/chord"
	"github.com/jsphweid/barline/constants"
	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/util"
	"github.com/pkg/errors"
)

var ErrPrefixOutOfRange = errors.New("prefix duration out of range")

// Refit describes a chord that was truncated by a barline and had its
// sub-events re-fitted.
type Refit struct {
	Voice   int
	Chord   model.ChordID
	From    int
	To      int
	Weights []int
	Fitted  chord.Fitted
}

// Splitter holds the settings of a split. The zero value uses
// constants.DefaultMinSubEventDuration and reports nothing.
type Splitter struct {
	// MinSubEventDuration is the floor passed to the fitter when a chord is
	// truncated.
	MinSubEventDuration int

	// OnRefit, when set, is called for every truncated chord, including the
	// ones whose sub-events had to be dropped or fell below the floor.
	OnRefit func(Refit)
}

func New(minSubEventDuration int) *Splitter {
	return &Splitter{MinSubEventDuration: minSubEventDuration}
}

// Pop splits bar into a bar lasting prefix milliseconds and a bar holding the
// rest. bar must not be used afterwards: the returned bars share its events.
// When prefix is the whole bar, bar itself is returned followed by an empty
// bar.
func Pop(bar model.Bar, prefix int) (model.Bar, model.Bar, error) {
	var s Splitter
	return s.Pop(bar, prefix)
}

// SplitIntoBars splits main at the absolute barline positions in boundaries.
func SplitIntoBars(main model.Bar, boundaries []int) ([]model.Bar, error) {
	var s Splitter
	return s.SplitIntoBars(main, boundaries)
}

func (s *Splitter) Pop(bar model.Bar, prefix int) (model.Bar, model.Bar, error) {
	if err := bar.Check(); err != nil {
		return model.Bar{}, model.Bar{}, errors.Wrap(err, "invalid bar")
	}
	duration := bar.Duration()
	if prefix <= 0 || prefix > duration {
		return model.Bar{}, model.Bar{}, errors.Wrapf(ErrPrefixOutOfRange, "cannot pop %dms from a %dms bar", prefix, duration)
	}
	if prefix == duration {
		return bar, bar.Empty(), nil
	}

	popped := model.Bar{Position: bar.Position, Voices: make([]model.Voice, len(bar.Voices))}
	remaining := model.Bar{Position: bar.Position + prefix, Voices: make([]model.Voice, len(bar.Voices))}
	for i, v := range bar.Voices {
		popped.Voices[i], remaining.Voices[i] = s.popVoice(i, v, prefix)
	}

	mustHaveDuration(popped, prefix)
	mustHaveDuration(remaining, duration-prefix)
	return popped, remaining, nil
}

func (s *Splitter) SplitIntoBars(main model.Bar, boundaries []int) ([]model.Bar, error) {
	if err := main.Check(); err != nil {
		return nil, errors.Wrap(err, "invalid main bar")
	}
	if err := boundary.Validate(main, boundaries); err != nil {
		return nil, err
	}

	var bars []model.Bar
	remaining := main
	for i, b := range boundaries {
		popped, rest, err := s.Pop(remaining, b-remaining.Position)
		if err != nil {
			return nil, errors.Wrapf(err, "bar %d", i)
		}
		bars = append(bars, popped)
		remaining = rest
	}
	if remaining.Duration() > 0 {
		bars = append(bars, remaining)
	}

	if total := util.Sum(model.Durations(bars)); total != uint64(main.Duration()) {
		panic(fmt.Sprintf("bars last %dms in total, main bar lasted %dms", total, main.Duration()))
	}
	return bars, nil
}

func (s *Splitter) popVoice(index int, v model.Voice, prefix int) (model.Voice, model.Voice) {
	var popped, remaining []model.Event
	var start int
	for _, e := range v.Events {
		end := start + e.Duration()
		switch {
		case end <= prefix:
			// a clef change exactly on the barline closes the popped bar
			popped = append(popped, e)
		case start >= prefix:
			remaining = append(remaining, e)
		default:
			before, after := s.cut(index, e, prefix-start)
			popped = append(popped, before)
			remaining = append(remaining, after)
		}
		start = end
	}
	return v.WithEvents(popped), v.WithEvents(remaining)
}

// cut splits e at offset milliseconds from its start, where
// 0 < offset < e.Duration().
func (s *Splitter) cut(voice int, e model.Event, offset int) (model.Event, model.Event) {
	switch t := e.(type) {
	case model.Rest:
		return model.Rest{Dur: offset}, model.Rest{Dur: t.Dur - offset}
	case model.CautionaryChord:
		before, after := t, t
		before.Dur = offset
		after.Dur = t.Dur - offset
		return before, after
	case model.Chord:
		weights := t.Weights()
		truncated, fitted, err := chord.Refit(t, offset, s.minSubEventDuration())
		if err != nil {
			panic(fmt.Sprintf("refit of chord %d to %dms: %v", t.ID, offset, err))
		}
		toBarline := offset
		truncated.DurationToNextBarline = &toBarline
		if s.OnRefit != nil {
			s.OnRefit(Refit{
				Voice:   voice,
				Chord:   t.ID,
				From:    t.Duration(),
				To:      offset,
				Weights: weights,
				Fitted:  fitted,
			})
		}
		return truncated, model.CautionaryChord{
			Echoes:  t.ID,
			Pitches: t.Pitches,
			Dur:     t.Duration() - offset,
		}
	case model.ClefChange:
		panic("clef change straddles a barline")
	default:
		panic(fmt.Sprintf("unknown event type %T", e))
	}
}

func (s *Splitter) minSubEventDuration() int {
	if s.MinSubEventDuration < 1 {
		return constants.DefaultMinSubEventDuration
	}
	return s.MinSubEventDuration
}

func mustHaveDuration(bar model.Bar, duration int) {
	for i, v := range bar.Voices {
		if d := v.Duration(); d != duration {
			panic(fmt.Sprintf("voice %d of bar at %dms lasts %dms, want %dms", i, bar.Position, d, duration))
		}
	}
}
