package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "barline",
	Short: "Splits compositions into bars",
	Long: `Splits a main bar holding a whole multi-voice composition into bars at
barline positions, truncating chords that straddle a barline and re-fitting
their sub-events.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
