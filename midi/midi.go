package midi

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerQuarter at Tempo BPM makes one tick last one millisecond.
const (
	TicksPerQuarter = 1000
	Tempo           = 60
)

type timed struct {
	tick uint32
	// note offs sort before everything else at the same tick
	order int
	msg   []byte
}

// Render turns bars into a format 1 SMF: a conductor track with the tempo and
// a marker at every barline, then one track per voice. Positions are taken
// relative to the first bar, so rendering a slice of bars yields an excerpt.
func Render(bars []model.Bar) (*smf.SMF, error) {
	if len(bars) == 0 {
		return nil, errors.New("no bars to render")
	}
	origin := bars[0].Position
	s := smf.NewSMF1()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var conductor []timed
	conductor = append(conductor, timed{tick: 0, order: 1, msg: smf.MetaTempo(Tempo)})
	for i, b := range bars {
		conductor = append(conductor, timed{
			tick:  uint32(b.Position - origin),
			order: 2,
			msg:   smf.MetaMarker(fmt.Sprintf("bar %d", i+1)),
		})
	}
	end := uint32(bars[len(bars)-1].End() - origin)
	if err := s.Add(track(conductor, end)); err != nil {
		return nil, errors.Wrap(err, "conductor track")
	}

	for vi, v := range bars[0].Voices {
		events, err := voiceEvents(bars, vi, origin)
		if err != nil {
			return nil, err
		}
		if v.Name != "" {
			events = append(events, timed{tick: 0, order: 0, msg: smf.MetaTrackSequenceName(v.Name)})
		}
		if err := s.Add(track(events, end)); err != nil {
			return nil, errors.Wrapf(err, "voice %d", vi)
		}
	}
	return s, nil
}

func WriteFile(path string, bars []model.Bar) error {
	s, err := Render(bars)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "could not encode midi")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "could not write %v", path)
	}
	return nil
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s, e = nil, errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return res, nil
}

// voiceEvents follows voice vi through all bars. A chord cut short by a
// barline keeps sounding through the cautionary chords that echo it.
func voiceEvents(bars []model.Bar, vi int, origin int) ([]timed, error) {
	var res []timed
	var held *model.BasicSubEvent
	var heldChord model.ChordID
	var heldUntil int
	var channel uint8

	release := func() {
		if held == nil {
			return
		}
		for _, p := range held.Pitches {
			res = append(res, timed{tick: uint32(heldUntil - origin), order: 0, msg: midi.NoteOff(channel, p)})
		}
		held = nil
	}

	for bi, b := range bars {
		if vi >= len(b.Voices) {
			return nil, errors.Errorf("bar %d has no voice %d", bi, vi)
		}
		v := b.Voices[vi]
		if v.Channel > 15 {
			return nil, errors.Errorf("voice %d has channel %d, above 15", vi, v.Channel)
		}
		channel = v.Channel
		pos := b.Position
		for _, e := range v.Events {
			switch t := e.(type) {
			case model.Chord:
				release()
				if t.Lyric != "" {
					res = append(res, timed{tick: uint32(pos - origin), order: 1, msg: smf.MetaLyric(t.Lyric)})
				}
				start := pos
				for i := range t.SubEvents {
					sub := t.SubEvents[i]
					for j, p := range sub.Pitches {
						res = append(res, timed{tick: uint32(start - origin), order: 2, msg: midi.NoteOn(channel, p, sub.Velocities[j])})
					}
					held, heldChord, heldUntil = &sub, t.ID, start+sub.Duration
					start += sub.Duration
					if i < len(t.SubEvents)-1 {
						release()
					}
				}
			case model.CautionaryChord:
				if held != nil && heldChord == t.Echoes {
					heldUntil += t.Dur
				} else {
					release()
				}
			case model.Rest:
				release()
			case model.ClefChange:
			default:
				panic(fmt.Sprintf("unknown event type %T", e))
			}
			pos += e.Duration()
		}
	}
	release()
	return res, nil
}

func track(events []timed, end uint32) smf.Track {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].order < events[j].order
	})
	var tr smf.Track
	var last uint32
	for _, e := range events {
		tr.Add(e.tick-last, e.msg)
		last = e.tick
	}
	tr.Close(end - last)
	return tr
}
