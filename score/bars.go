package score

import (
	"encoding/json"
	"fmt"

	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BarsDocument is the serialized result of a split.
type BarsDocument struct {
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`
	Bars []BarDoc `json:"bars" yaml:"bars"`
}

type BarDoc struct {
	Position int        `json:"position" yaml:"position"`
	Duration int        `json:"duration" yaml:"duration"`
	Voices   []VoiceDoc `json:"voices" yaml:"voices"`
}

func FromBars(name string, bars []model.Bar) BarsDocument {
	doc := BarsDocument{Name: name, Bars: make([]BarDoc, len(bars))}
	for i, b := range bars {
		bd := BarDoc{Position: b.Position, Duration: b.Duration()}
		for _, v := range b.Voices {
			vd := VoiceDoc{Channel: v.Channel, Name: v.Name, Events: make([]EventDoc, len(v.Events))}
			for j, e := range v.Events {
				vd.Events[j] = eventDoc(e)
			}
			bd.Voices = append(bd.Voices, vd)
		}
		doc.Bars[i] = bd
	}
	return doc
}

// Encode marshals the document as "yaml" or "json".
func (d BarsDocument) Encode(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(d)
	case "json":
		return json.MarshalIndent(d, "", "  ")
	}
	return nil, errors.Errorf("unknown output format %q", format)
}

func eventDoc(e model.Event) EventDoc {
	switch t := e.(type) {
	case model.Chord:
		ed := EventDoc{
			Kind:    "chord",
			ID:      uint32(t.ID),
			Pitches: ints(t.Pitches),
			Lyric:   t.Lyric,
		}
		if t.DurationToNextBarline != nil {
			ed.ToBarline = *t.DurationToNextBarline
		}
		for _, s := range t.SubEvents {
			ed.SubEvents = append(ed.SubEvents, SubEventDoc{
				Duration:   s.Duration,
				Pitches:    ints(s.Pitches),
				Velocities: ints(s.Velocities),
			})
		}
		return ed
	case model.Rest:
		return EventDoc{Kind: "rest", Duration: t.Dur}
	case model.ClefChange:
		return EventDoc{Kind: "clef", Clef: t.Clef}
	case model.CautionaryChord:
		return EventDoc{Kind: "cautionary", Echoes: uint32(t.Echoes), Pitches: ints(t.Pitches), Duration: t.Dur}
	}
	panic(fmt.Sprintf("unknown event type %T", e))
}

func ints(values []uint8) []int {
	res := make([]int, len(values))
	for i, v := range values {
		res[i] = int(v)
	}
	return res
}
