// Package score reads main bar documents and writes split bars. A document
// describes every voice of a composition as one long list of events; it is
// YAML or JSON, like:
//
//	name: etude
//	voices:
//	  - channel: 0
//	    events:
//	      - {kind: chord, duration: 1000, pitches: [60, 64, 67]}
//	      - {kind: rest, duration: 500}
//	      - {kind: clef, clef: bass}
//	      - kind: chord
//	        pitches: [48]
//	        subevents:
//	          - {duration: 100, pitches: [50], velocities: [70]}
//	          - {duration: 400, pitches: [48], velocities: [90]}
package score

import (
	"encoding/json"
	"os"

	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultVelocity = 64
	// MIDI channels are numbered 0 to 15.
	MaxChannel = 15
)

var ErrBadDocument = errors.New("bad score document")

type Document struct {
	Name         string       `json:"name,omitempty" yaml:"name,omitempty"`
	Position     int          `json:"position,omitempty" yaml:"position,omitempty"`
	Voices       []VoiceDoc   `json:"voices" yaml:"voices"`
	Instructions Instructions `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

type VoiceDoc struct {
	Channel uint8      `json:"channel" yaml:"channel"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	Events  []EventDoc `json:"events" yaml:"events"`
}

// EventDoc is the union of the fields of every event kind. Pitches are ints
// rather than bytes so that JSON shows them as numbers.
type EventDoc struct {
	Kind      string        `json:"kind" yaml:"kind"`
	ID        uint32        `json:"id,omitempty" yaml:"id,omitempty"`
	Duration  int           `json:"duration,omitempty" yaml:"duration,omitempty"`
	Pitches   []int         `json:"pitches,omitempty" yaml:"pitches,omitempty,flow"`
	Velocity  int           `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	SubEvents []SubEventDoc `json:"subevents,omitempty" yaml:"subevents,omitempty"`
	ToBarline int           `json:"tobarline,omitempty" yaml:"tobarline,omitempty"`
	Clef      string        `json:"clef,omitempty" yaml:"clef,omitempty"`
	Echoes    uint32        `json:"echoes,omitempty" yaml:"echoes,omitempty"`
	Lyric     string        `json:"lyric,omitempty" yaml:"lyric,omitempty"`
}

type SubEventDoc struct {
	Duration   int   `json:"duration" yaml:"duration"`
	Pitches    []int `json:"pitches" yaml:"pitches,flow"`
	Velocities []int `json:"velocities,omitempty" yaml:"velocities,omitempty,flow"`
}

// Parse reads a document, trying JSON first and YAML second.
func Parse(data []byte) (Document, error) {
	var doc Document
	if errJSON := json.Unmarshal(data, &doc); errJSON != nil {
		doc = Document{}
		if errYaml := yaml.Unmarshal(data, &doc); errYaml != nil {
			return Document{}, errors.Wrapf(ErrBadDocument, "could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return doc, nil
}

func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "could not read file %v", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, errors.Wrapf(err, "file %v", path)
	}
	return doc, nil
}

// MainBar builds the bar holding the whole document. Chord IDs come from
// alloc, in document order.
func (d Document) MainBar(alloc *model.IDAllocator) (model.Bar, error) {
	bar := model.Bar{Position: d.Position}
	for i, vd := range d.Voices {
		if vd.Channel > MaxChannel {
			return model.Bar{}, errors.Wrapf(ErrBadDocument, "voice %d has channel %d", i, vd.Channel)
		}
		v := model.Voice{Channel: vd.Channel, Name: vd.Name}
		for j, ed := range vd.Events {
			e, err := ed.event(alloc)
			if err != nil {
				return model.Bar{}, errors.Wrapf(err, "voice %d event %d", i, j)
			}
			v.Events = append(v.Events, e)
		}
		bar.Voices = append(bar.Voices, v)
	}
	if err := bar.Check(); err != nil {
		return model.Bar{}, errors.Wrap(err, "main bar")
	}
	return bar, nil
}

func (ed EventDoc) event(alloc *model.IDAllocator) (model.Event, error) {
	switch ed.Kind {
	case "rest":
		return model.Rest{Dur: ed.Duration}, nil
	case "clef":
		return model.ClefChange{Clef: ed.Clef}, nil
	case "cautionary":
		pitches, err := notes(ed.Pitches)
		if err != nil {
			return nil, err
		}
		return model.CautionaryChord{Echoes: model.ChordID(ed.Echoes), Pitches: pitches, Dur: ed.Duration}, nil
	case "chord":
		return ed.chord(alloc)
	}
	return nil, errors.Wrapf(ErrBadDocument, "unknown event kind %q", ed.Kind)
}

func (ed EventDoc) chord(alloc *model.IDAllocator) (model.Chord, error) {
	pitches, err := notes(ed.Pitches)
	if err != nil {
		return model.Chord{}, err
	}
	if len(ed.SubEvents) == 0 {
		velocity, err := midiValue(ed.Velocity, DefaultVelocity)
		if err != nil {
			return model.Chord{}, err
		}
		c := model.NewChord(alloc.Next(), pitches, velocity, ed.Duration)
		c.Lyric = ed.Lyric
		return c, nil
	}
	if ed.Duration != 0 {
		return model.Chord{}, errors.Wrap(ErrBadDocument, "chord has both a duration and sub-events")
	}
	c := model.Chord{ID: alloc.Next(), Pitches: pitches, Lyric: ed.Lyric}
	for _, sd := range ed.SubEvents {
		s, err := sd.subEvent(ed.Velocity)
		if err != nil {
			return model.Chord{}, err
		}
		c.SubEvents = append(c.SubEvents, s)
	}
	if len(c.Pitches) == 0 {
		c.Pitches = c.SubEvents[0].Pitches
	}
	return c, nil
}

func (sd SubEventDoc) subEvent(velocity int) (model.BasicSubEvent, error) {
	pitches, err := notes(sd.Pitches)
	if err != nil {
		return model.BasicSubEvent{}, err
	}
	s := model.BasicSubEvent{Pitches: pitches, Duration: sd.Duration}
	if len(sd.Velocities) == 0 {
		v, err := midiValue(velocity, DefaultVelocity)
		if err != nil {
			return s, err
		}
		for range pitches {
			s.Velocities = append(s.Velocities, v)
		}
		return s, nil
	}
	for _, raw := range sd.Velocities {
		v, err := midiValue(raw, DefaultVelocity)
		if err != nil {
			return s, err
		}
		s.Velocities = append(s.Velocities, v)
	}
	return s, nil
}

func notes(raw []int) (model.Notes, error) {
	res := make(model.Notes, len(raw))
	for i, p := range raw {
		if p < 0 || p > 127 {
			return nil, errors.Wrapf(ErrBadDocument, "pitch %d out of range", p)
		}
		res[i] = uint8(p)
	}
	return res, nil
}

func midiValue(raw int, fallback uint8) (uint8, error) {
	if raw == 0 {
		return fallback, nil
	}
	if raw < 0 || raw > 127 {
		return 0, errors.Wrapf(ErrBadDocument, "value %d out of range", raw)
	}
	return uint8(raw), nil
}
