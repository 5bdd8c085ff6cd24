package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/barline/model"
)

// PitchKey returns a canonical key for a set of pitches, e.g. "60-64-67". The
// input is not modified.
func PitchKey(notes model.Notes) string {
	sorted := make(model.Notes, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

// Refit re-derives the sub-events of c so that the chord lasts total
// milliseconds, dropping trailing sub-events that would fall below min. The
// returned chord has a fresh sub-event slice; c is left untouched.
func Refit(c model.Chord, total int, min int) (model.Chord, Fitted, error) {
	f, err := FitProfile(c.Weights(), total, min)
	if err != nil {
		return c, f, err
	}
	subEvents := make([]model.BasicSubEvent, f.Kept)
	for i := range subEvents {
		s := c.SubEvents[i]
		s.Duration = f.Durations[i]
		subEvents[i] = s
	}
	return c.WithSubEvents(subEvents), f, nil
}
