package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/barline/chord"
	"github.com/jsphweid/barline/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var fitMin int

func init() {
	fitCmd.Flags().IntVar(&fitMin, "min", constants.GetMinSubEventDuration(), "shortest sub-event, in ms")
	rootCmd.AddCommand(fitCmd)
}

var fitCmd = &cobra.Command{
	Use:   "fit <total> <weight>...",
	Short: "Fits a basic chord profile to a duration",
	Long:  `Scales the weights of a basic chord profile to sub-event durations summing to total ms.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		nums, err := atois(args)
		if err != nil {
			return err
		}
		f, err := chord.FitProfile(nums[1:], nums[0], fitMin)
		if err != nil {
			return err
		}
		fmt.Printf("durations: %v\n", f.Durations)
		fmt.Printf("kept: %v of %v\n", f.Kept, len(nums)-1)
		if f.Degraded {
			fmt.Printf("below the %vms minimum\n", fitMin)
		}
		return nil
	},
}

func atois(args []string) ([]int, error) {
	res := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		res[i] = n
	}
	return res, nil
}
