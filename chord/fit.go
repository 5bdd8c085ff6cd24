package chord

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/jsphweid/barline/util"
	"github.com/pkg/errors"
)

var ErrInvalidProfile = errors.New("invalid basic chord profile")

// Fitted is the outcome of fitting a basic chord profile to a duration.
type Fitted struct {
	Durations []int

	// Kept is the number of leading weights that survived; the rest were
	// dropped because their share would have been shorter than the floor.
	Kept int

	// Degraded is set when even a single sub-event is shorter than the floor.
	// The total duration is still exact.
	Degraded bool
}

// Dropped returns how many weights did not make it into Durations.
func (f Fitted) Dropped(weights []int) int {
	return len(weights) - f.Kept
}

// Fit scales weights to integer durations summing exactly to total, dropping
// trailing weights until every remaining one scales to at least min.
func Fit(weights []int, total int, min int) ([]int, error) {
	f, err := FitProfile(weights, total, min)
	if err != nil {
		return nil, err
	}
	return f.Durations, nil
}

// FitProfile is Fit, also reporting how many weights were kept and whether the
// floor had to be violated.
func FitProfile(weights []int, total int, min int) (Fitted, error) {
	if err := checkProfile(weights, total, min); err != nil {
		return Fitted{}, err
	}

	k := len(weights)
	for ; k > 1; k-- {
		if fitsFloor(weights[:k], total, min) {
			break
		}
	}

	res := Fitted{
		Durations: scale(weights[:k], total),
		Kept:      k,
		Degraded:  !fitsFloor(weights[:k], total, min),
	}

	if len(res.Durations) == 0 || len(res.Durations) > len(weights) {
		panic(fmt.Sprintf("fit of %v produced %d durations", weights, len(res.Durations)))
	}
	if sum := util.Sum(res.Durations); sum != uint64(total) {
		panic(fmt.Sprintf("fit of %v to %dms sums to %dms", weights, total, sum))
	}
	return res, nil
}

func checkProfile(weights []int, total int, min int) error {
	if len(weights) == 0 {
		return errors.Wrap(ErrInvalidProfile, "no weights")
	}
	for i, w := range weights {
		if w < 1 || w > math.MaxUint32 {
			return errors.Wrapf(ErrInvalidProfile, "weight %d is %d", i, w)
		}
	}
	if total < 1 || total > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidProfile, "total duration %d", total)
	}
	if min < 1 || min > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidProfile, "minimum duration %d", min)
	}
	return nil
}

// fitsFloor reports whether weight*total/sum >= min for every weight, computed
// without rounding. Products are 128 bits wide.
func fitsFloor(weights []int, total int, min int) bool {
	sum := util.Sum(weights)
	floorHi, floorLo := bits.Mul64(uint64(min), sum)
	for _, w := range weights {
		hi, lo := bits.Mul64(uint64(w), uint64(total))
		if hi < floorHi || (hi == floorHi && lo < floorLo) {
			return false
		}
	}
	return true
}

// scale turns weights into durations through floor-rounded cumulative
// boundaries; any shortfall goes to the last duration.
func scale(weights []int, total int) []int {
	sum := util.Sum(weights)
	res := make([]int, len(weights))
	var cum uint64
	var prev int
	for i, w := range weights {
		cum += uint64(w)
		// cum <= sum, so the quotient is at most total and fits
		hi, lo := bits.Mul64(cum, uint64(total))
		q, _ := bits.Div64(hi, lo, sum)
		boundary := int(q)
		res[i] = boundary - prev
		prev = boundary
	}
	if residual := total - prev; residual != 0 {
		res[len(res)-1] += residual
	}
	return res
}
