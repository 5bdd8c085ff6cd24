package cmd

import (
	"log"

	"github.com/jsphweid/barline/boundary"
	"github.com/jsphweid/barline/constants"
	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/score"
	"github.com/jsphweid/barline/split"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var ErrNoPolicy = errors.New("give barline positions with --at or a bar count with --bars")

type SplitOptions struct {
	At     []int
	Bars   int
	Min    int
	OutDir string
	Format string
	Midi   bool
}

func addPolicyFlags(c *cobra.Command, opts *SplitOptions) {
	c.Flags().IntSliceVar(&opts.At, "at", nil, "approximate barline positions in ms, snapped to the nearest event end")
	c.Flags().IntVar(&opts.Bars, "bars", 0, "number of bars of roughly equal duration")
	c.Flags().IntVar(&opts.Min, "min", constants.GetMinSubEventDuration(), "shortest sub-event a truncated chord may keep, in ms")
}

func (o SplitOptions) Policy() (boundary.Policy, error) {
	switch {
	case len(o.At) > 0 && o.Bars > 0:
		return nil, errors.New("--at and --bars are mutually exclusive")
	case len(o.At) > 0:
		return boundary.Exact{Approx: o.At}, nil
	case o.Bars > 0:
		return boundary.Balanced{Count: o.Bars}, nil
	}
	return nil, ErrNoPolicy
}

type splitResult struct {
	name       string
	boundaries []int
	bars       []model.Bar
	refits     []split.Refit
}

// splitDocument runs the whole pipeline on doc: build the main bar, place the
// barlines, split and apply the document's instructions.
func splitDocument(doc score.Document, opts SplitOptions) (splitResult, error) {
	res := splitResult{name: doc.Name}
	policy, err := opts.Policy()
	if err != nil {
		return res, err
	}
	main, err := doc.MainBar(model.NewIDAllocator(0))
	if err != nil {
		return res, err
	}
	res.boundaries, err = boundary.Get(main, policy)
	if err != nil {
		return res, errors.Wrap(err, "could not place barlines")
	}

	s := split.New(opts.Min)
	s.OnRefit = func(r split.Refit) {
		res.refits = append(res.refits, r)
	}
	res.bars, err = s.SplitIntoBars(main, res.boundaries)
	if err != nil {
		return res, err
	}
	if !doc.Instructions.Empty() {
		res.bars, err = score.Apply(res.bars, doc.Instructions)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// logRefits reports truncated chords that lost sub-events or could not keep
// them above the floor.
func logRefits(name string, refits []split.Refit, min int) {
	for _, r := range refits {
		if dropped := r.Fitted.Dropped(r.Weights); dropped > 0 {
			log.Printf("%v: chord %d (voice %d) cut from %dms to %dms, dropped %d of %d sub-events", name, r.Chord, r.Voice, r.From, r.To, dropped, len(r.Weights))
		}
		if r.Fitted.Degraded {
			log.Printf("%v: chord %d (voice %d) lasts %dms before the barline, below the %dms minimum", name, r.Chord, r.Voice, r.To, min)
		}
	}
}
