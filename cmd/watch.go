package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/barline/constants"
	"github.com/spf13/cobra"
)

var (
	watchOpts     SplitOptions
	watchInterval time.Duration
	watchDelay    time.Duration
)

func init() {
	addPolicyFlags(watchCmd, &watchOpts)
	watchCmd.Flags().StringVarP(&watchOpts.OutDir, "out", "o", constants.GetOutDir(), "directory where the bars are written")
	watchCmd.Flags().StringVarP(&watchOpts.Format, "format", "f", "yaml", "output format: yaml, json or gob")
	watchCmd.Flags().BoolVar(&watchOpts.Midi, "midi", false, "also render the bars as a .mid file")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often the document is checked for changes")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 500*time.Millisecond, "quiet time after the last change before splitting")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Splits a document whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return Watch(ctx, args[0], watchOpts, watchInterval, watchDelay)
	},
}

// Watch polls path every interval and splits it once it has stopped changing
// for delay. It returns when ctx is done, after any split in flight has
// finished; a pending split is dropped.
func Watch(ctx context.Context, path string, opts SplitOptions, interval time.Duration, delay time.Duration) error {
	debounced := debounce.New(delay)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// running is held while a split is in flight
	var running sync.Mutex
	split := func() {
		running.Lock()
		defer running.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err := SplitFile(path, opts); err != nil {
			fmt.Fprintf(os.Stderr, "could not split %v: %v\n", path, err)
		}
	}

	var last time.Time
	for {
		info, err := os.Stat(path)
		if err != nil {
			log.Printf("could not stat %v: %v", path, err)
		} else if info.ModTime() != last {
			last = info.ModTime()
			debounced(split)
		}
		select {
		case <-ctx.Done():
			debounced(func() {})
			running.Lock()
			running.Unlock()
			return nil
		case <-ticker.C:
		}
	}
}
