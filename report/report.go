package report

import (
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/jsphweid/barline/chord"
	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/split"
	"github.com/jsphweid/barline/util"
)

const DefaultTemplate = `{{ .Name | default "untitled" | upper }}: {{ len .Bars }} bars, {{ .Duration }}ms
{{ repeat 40 "-" }}
{{- range .Bars }}
bar {{ add1 .Index }} at {{ .Position }}ms, {{ .Duration }}ms
{{- range .Voices }}
  voice {{ .Channel }}{{ with .Name }} ({{ . }}){{ end }}: {{ .Events }} events, {{ .Truncated }} truncated, {{ .Cautionary }} cautionary{{ if .Chords }} [{{ join " " .Chords }}]{{ end }}
{{- end }}
{{- end }}
{{- if .Refits }}
{{ len .Refits }} chords refitted, {{ .Dropped }} sub-events dropped, {{ .Degraded }} below the floor
{{- end }}
`

type VoiceSummary struct {
	Channel    uint8
	Name       string
	Events     int
	Truncated  int
	Cautionary int
	Clefs      int
	// pitch keys of the chords starting in the bar
	Chords []string
}

type BarSummary struct {
	Index    int
	Position int
	Duration int
	Voices   []VoiceSummary
}

type Summary struct {
	Name     string
	Duration int
	Bars     []BarSummary
	Refits   []split.Refit
}

// Degraded counts refits that left a sub-event shorter than the floor.
func (s Summary) Degraded() int {
	var n int
	for _, r := range s.Refits {
		if r.Fitted.Degraded {
			n++
		}
	}
	return n
}

// Dropped counts the sub-events lost to refits.
func (s Summary) Dropped() int {
	var n int
	for _, r := range s.Refits {
		n += r.Fitted.Dropped(r.Weights)
	}
	return n
}

func Summarize(name string, bars []model.Bar, refits []split.Refit) Summary {
	s := Summary{
		Name:     name,
		Duration: int(util.Sum(model.Durations(bars))),
		Refits:   refits,
	}
	for i, b := range bars {
		bs := BarSummary{Index: i, Position: b.Position, Duration: b.Duration()}
		for _, v := range b.Voices {
			vs := VoiceSummary{Channel: v.Channel, Name: v.Name, Events: len(v.Events)}
			for _, e := range v.Events {
				switch t := e.(type) {
				case model.Chord:
					vs.Chords = append(vs.Chords, chord.PitchKey(t.Pitches))
					if t.Truncated() {
						vs.Truncated++
					}
				case model.CautionaryChord:
					vs.Cautionary++
				case model.ClefChange:
					vs.Clefs++
				}
			}
			bs.Voices = append(bs.Voices, vs)
		}
		s.Bars = append(s.Bars, bs)
	}
	return s
}

// Render executes tmpl, or DefaultTemplate when tmpl is empty, with the sprig
// functions available.
func Render(w io.Writer, s Summary, tmpl string) error {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	t, err := template.New("report").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return err
	}
	return t.Execute(w, s)
}
