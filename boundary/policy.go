package boundary

import (
	"github.com/jsphweid/barline/model"
	"github.com/pkg/errors"
)

// Policy decides where the barlines of a main bar go.
type Policy interface {
	boundaries(bar model.Bar) ([]int, error)
}

// Exact snaps each approximate position to the nearest event end.
type Exact struct {
	Approx []int
}

// Balanced asks for Count bars of roughly equal duration.
type Balanced struct {
	Count int
}

// Get returns the absolute barline positions for bar under p. The result is
// validated and strictly ascending.
func Get(bar model.Bar, p Policy) ([]int, error) {
	res, err := p.boundaries(bar)
	if err != nil {
		return nil, err
	}
	if err := Validate(bar, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (p Exact) boundaries(bar model.Bar) ([]int, error) {
	if len(p.Approx) == 0 {
		return nil, ErrEmpty
	}
	ends := Ends(bar)
	res := make([]int, len(p.Approx))
	for i, approx := range p.Approx {
		snapped, err := Snap(ends, approx)
		if err != nil {
			return nil, err
		}
		res[i] = snapped
	}
	return res, nil
}

func (p Balanced) boundaries(bar model.Bar) ([]int, error) {
	if p.Count < 1 {
		return nil, errors.Wrapf(ErrBadCount, "asked for %d bars", p.Count)
	}
	ends := Ends(bar)
	total := bar.Duration()
	res := make([]int, 0, p.Count)
	for i := 1; i <= p.Count; i++ {
		target := bar.Position + i*total/p.Count
		snapped, err := Snap(ends, target)
		if err != nil {
			return nil, err
		}
		if n := len(res); n > 0 && res[n-1] == snapped {
			return nil, &Error{Index: i - 1, Position: snapped, Err: ErrDuplicateBoundary}
		}
		res = append(res, snapped)
	}
	return res, nil
}
