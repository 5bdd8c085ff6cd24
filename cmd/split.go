package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/barline/constants"
	"github.com/jsphweid/barline/midi"
	"github.com/jsphweid/barline/score"
	"github.com/jsphweid/barline/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var splitOpts SplitOptions

func init() {
	addPolicyFlags(splitCmd, &splitOpts)
	splitCmd.Flags().StringVarP(&splitOpts.OutDir, "out", "o", constants.GetOutDir(), "directory where the bars are written")
	splitCmd.Flags().StringVarP(&splitOpts.Format, "format", "f", "yaml", "output format: yaml, json or gob")
	splitCmd.Flags().BoolVar(&splitOpts.Midi, "midi", false, "also render the bars as a .mid file")
	rootCmd.AddCommand(splitCmd)
}

var splitCmd = &cobra.Command{
	Use:   "split <document or directory>...",
	Short: "Splits documents into bars",
	Long: `Splits every main bar document (.yml, .yaml or .json) into bars and writes
them to the output directory as <name>.bars.<format>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var paths []string
		for _, arg := range args {
			found, err := util.GatherDocumentPaths(arg)
			if err != nil {
				return err
			}
			paths = append(paths, found...)
		}
		var failed int
		for i, path := range paths {
			fmt.Printf("Splitting %v of %v documents: %v\n", i+1, len(paths), path)
			if err := SplitFile(path, splitOpts); err != nil {
				fmt.Fprintf(os.Stderr, "could not split %v: %v\n", path, err)
				failed++
			}
		}
		if failed > 0 {
			return errors.Errorf("%d of %d documents failed", failed, len(paths))
		}
		return nil
	},
}

// SplitFile splits the document at path and writes the result to
// opts.OutDir.
func SplitFile(path string, opts SplitOptions) error {
	doc, err := score.Load(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if doc.Name == "" {
		doc.Name = name
	}
	res, err := splitDocument(doc, opts)
	if err != nil {
		return err
	}
	logRefits(path, res.refits, opts.Min)

	if err := util.EnsureDir(opts.OutDir); err != nil {
		return err
	}
	base := filepath.Join(opts.OutDir, name+".bars")
	out := score.FromBars(doc.Name, res.bars)
	switch opts.Format {
	case "gob":
		if err := util.CreateBinary(base+".dat", out); err != nil {
			return err
		}
	default:
		data, err := out.Encode(opts.Format)
		if err != nil {
			return err
		}
		ext := ".yml"
		if opts.Format == "json" {
			ext = ".json"
		}
		if err := os.WriteFile(base+ext, data, 0644); err != nil {
			return errors.Wrapf(err, "could not write bars for %v", path)
		}
	}
	if opts.Midi {
		if err := midi.WriteFile(base+".mid", res.bars); err != nil {
			return err
		}
	}
	fmt.Printf("Wrote %v bars at %v\n", len(res.bars), res.boundaries)
	return nil
}
