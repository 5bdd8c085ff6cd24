// Package boundary derives and validates barline positions: absolute
// millisecond offsets from the start of the composition at which a main bar
// is cut into bars. Every barline must fall on the end of at least one event
// in at least one voice.
package boundary

import (
	"fmt"

	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/util"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var (
	ErrEmpty             = errors.New("no boundaries")
	ErrNotPositive       = errors.New("boundary is not after the start of the bar")
	ErrNotAscending      = errors.New("boundaries are not ascending")
	ErrDuplicateBoundary = errors.New("duplicate boundary")
	ErrOutOfRange        = errors.New("boundary is after the end of the bar")
	ErrUnaligned         = errors.New("boundary is not the end of any event")
	ErrNoEvents          = errors.New("bar has no timed events")
	ErrBadCount          = errors.New("bar count must be positive")
)

// Error describes the boundary at Index that failed validation.
type Error struct {
	Index    int
	Position int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("boundary %d at %dms: %v", e.Index, e.Position, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause from github.com/pkg/errors reach the sentinel.
func (e *Error) Cause() error { return e.Err }

// Ends returns the absolute end position of every event that takes time,
// scanning voice by voice and, within a voice, event by event. Positions
// appear as often as events end there.
func Ends(bar model.Bar) []int {
	var res []int
	for _, v := range bar.Voices {
		pos := bar.Position
		for _, e := range v.Events {
			pos += e.Duration()
			if e.Kind() == model.KindClef {
				continue
			}
			res = append(res, pos)
		}
	}
	return res
}

// Candidates returns the distinct event end positions of bar in ascending
// order; every valid boundary is one of them.
func Candidates(bar model.Bar) []int {
	res := Ends(bar)
	slices.Sort(res)
	return slices.Compact(res)
}

// Snap returns the element of ends closest to target. On a tie the element
// found first wins.
func Snap(ends []int, target int) (int, error) {
	if len(ends) == 0 {
		return 0, ErrNoEvents
	}
	best := ends[0]
	for _, e := range ends[1:] {
		if util.Abs(e-target) < util.Abs(best-target) {
			best = e
		}
	}
	return best, nil
}

// Validate checks that boundaries can be used to split bar: there is at least
// one, the first is after the start of the bar, they strictly ascend, none is
// after the end of the bar and each is the end of an event.
func Validate(bar model.Bar, boundaries []int) error {
	if len(boundaries) == 0 {
		return ErrEmpty
	}
	aligned := make(map[int]bool)
	for _, e := range Ends(bar) {
		aligned[e] = true
	}
	for i, b := range boundaries {
		fail := func(err error) error {
			return &Error{Index: i, Position: b, Err: err}
		}
		switch {
		case i == 0 && b <= bar.Position:
			return fail(ErrNotPositive)
		case i > 0 && b == boundaries[i-1]:
			return fail(ErrDuplicateBoundary)
		case i > 0 && b < boundaries[i-1]:
			return fail(ErrNotAscending)
		case b > bar.End():
			return fail(ErrOutOfRange)
		case !aligned[b]:
			return fail(ErrUnaligned)
		}
	}
	return nil
}
