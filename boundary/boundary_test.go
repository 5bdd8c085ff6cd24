package boundary

import (
	"testing"

	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rests(durations ...int) model.Voice {
	var v model.Voice
	for _, d := range durations {
		v.Events = append(v.Events, model.Rest{Dur: d})
	}
	return v
}

func twoVoices() model.Bar {
	chords := model.Voice{Channel: 1, Events: []model.Event{
		model.NewChord(1, model.Notes{60}, 64, 800),
		model.ClefChange{Clef: "bass"},
		model.NewChord(2, model.Notes{48}, 64, 1200),
	}}
	return model.Bar{Voices: []model.Voice{rests(500, 500, 1000), chords}}
}

func TestEndsScanVoicesThenEvents(t *testing.T) {
	bar := twoVoices()
	bar.Position = 100

	assert := assert.New(t)
	assert.Equal([]int{600, 1100, 2100, 900, 2100}, Ends(bar))
	assert.Equal([]int{600, 900, 1100, 2100}, Candidates(bar))
}

func TestSnapPrefersFirstFoundOnTie(t *testing.T) {
	assert := assert.New(t)

	snapped, err := Snap([]int{600, 400}, 500)
	require.NoError(t, err)
	assert.Equal(600, snapped)

	snapped, err = Snap([]int{400, 600}, 500)
	require.NoError(t, err)
	assert.Equal(400, snapped)

	_, err = Snap(nil, 500)
	assert.ErrorIs(err, ErrNoEvents)
}

func TestExact(t *testing.T) {
	res, err := Get(twoVoices(), Exact{Approx: []int{790, 1990}})
	require.NoError(t, err)
	assert.Equal(t, []int{800, 2000}, res)
}

func TestExactRejectsPositionsSnappingTogether(t *testing.T) {
	_, err := Get(twoVoices(), Exact{Approx: []int{1900, 2100}})
	assert.ErrorIs(t, err, ErrDuplicateBoundary)
}

func TestBalanced(t *testing.T) {
	bar := model.Bar{Voices: []model.Voice{rests(500, 500, 500, 500)}}

	assert := assert.New(t)
	res, err := Get(bar, Balanced{Count: 2})
	require.NoError(t, err)
	assert.Equal([]int{1000, 2000}, res)

	res, err = Get(bar, Balanced{Count: 4})
	require.NoError(t, err)
	assert.Equal([]int{500, 1000, 1500, 2000}, res)

	res, err = Get(bar, Balanced{Count: 1})
	require.NoError(t, err)
	assert.Equal([]int{2000}, res)
}

func TestBalancedSnapsToNearestEnd(t *testing.T) {
	bar := model.Bar{Position: 1000, Voices: []model.Voice{rests(300, 900, 300, 500)}}

	// targets 1666 and 2333 snap to 1300 and 2200, the last one is the end
	res, err := Get(bar, Balanced{Count: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1300, 2200, 3000}, res)
}

func TestBalancedRejectsTooManyBars(t *testing.T) {
	bar := model.Bar{Voices: []model.Voice{rests(500, 500, 500, 500)}}

	_, err := Get(bar, Balanced{Count: 5})
	require.ErrorIs(t, err, ErrDuplicateBoundary)

	var boundaryErr *Error
	require.True(t, errors.As(err, &boundaryErr))
	assert.Equal(t, 1000, boundaryErr.Position)

	_, err = Get(bar, Balanced{Count: 0})
	assert.ErrorIs(t, err, ErrBadCount)
}

func TestGetIsDeterministic(t *testing.T) {
	bar := twoVoices()
	first, err := Get(bar, Balanced{Count: 2})
	require.NoError(t, err)
	second, err := Get(bar, Balanced{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidate(t *testing.T) {
	bar := twoVoices()
	cases := []struct {
		name       string
		boundaries []int
		err        error
		index      int
	}{
		{"empty", nil, ErrEmpty, -1},
		{"zero", []int{0, 800}, ErrNotPositive, 0},
		{"duplicate", []int{500, 500}, ErrDuplicateBoundary, 1},
		{"descending", []int{1000, 800}, ErrNotAscending, 1},
		{"after end", []int{800, 2500}, ErrOutOfRange, 1},
		{"unaligned", []int{300}, ErrUnaligned, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(bar, c.boundaries)
			require.ErrorIs(t, err, c.err)
			var boundaryErr *Error
			if c.index >= 0 {
				require.True(t, errors.As(err, &boundaryErr))
				assert.Equal(t, c.index, boundaryErr.Index)
				assert.Equal(t, c.err, errors.Cause(err))
			}
		})
	}

	assert.NoError(t, Validate(bar, []int{500, 800, 1000, 2000}))
}
