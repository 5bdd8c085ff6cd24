package model

import (
	"github.com/pkg/errors"
)

// Voice is one part's ordered sequence of events. Events are contiguous: the
// position of an event relative to the start of its Bar is the sum of the
// durations before it, so positions are derived rather than stored.
type Voice struct {
	Channel uint8
	Name    string
	Events  []Event
}

func (v Voice) Duration() int {
	var total int
	for _, e := range v.Events {
		total += e.Duration()
	}
	return total
}

// Positions returns the start of every event relative to the start of the
// voice.
func (v Voice) Positions() []int {
	res := make([]int, len(v.Events))
	var pos int
	for i, e := range v.Events {
		res[i] = pos
		pos += e.Duration()
	}
	return res
}

// InsertionIndex returns the index at which an event starting at position
// belongs: the index of the first event starting at or after position. It
// returns false if position falls strictly inside an event or beyond the end
// of the voice.
func (v Voice) InsertionIndex(position int) (int, bool) {
	var pos int
	for i, e := range v.Events {
		if pos == position {
			return i, true
		}
		if pos > position {
			return 0, false
		}
		pos += e.Duration()
	}
	if pos == position {
		return len(v.Events), true
	}
	return 0, false
}

// WithEvents returns a voice with the same identity holding events.
func (v Voice) WithEvents(events []Event) Voice {
	return Voice{Channel: v.Channel, Name: v.Name, Events: events}
}

// Copy makes a copy of the voice whose event slice can be changed without
// affecting the original.
func (v Voice) Copy() Voice {
	events := make([]Event, len(v.Events))
	copy(events, v.Events)
	return v.WithEvents(events)
}

func (v Voice) Check() error {
	for i, e := range v.Events {
		if err := CheckEvent(e); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
	}
	return nil
}
