package cmd

import (
	"fmt"

	"github.com/jsphweid/barline/boundary"
	"github.com/jsphweid/barline/model"
	"github.com/jsphweid/barline/score"
	"github.com/jsphweid/barline/util"
	"github.com/spf13/cobra"
)

var boundariesOpts SplitOptions

func init() {
	addPolicyFlags(boundariesCmd, &boundariesOpts)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(boundariesCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <document>",
	Short: "Inspects a document",
	Long:  `Prints the voices of a document and the positions where barlines may go.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		main, err := loadMainBar(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("duration: %vms\n", main.Duration())
		for i, v := range main.Voices {
			kinds := make(map[string]int)
			for _, e := range v.Events {
				kinds[e.Kind().String()]++
			}
			fmt.Printf("voice %v: channel %v, %q, %v events\n", i, v.Channel, v.Name, len(v.Events))
			for _, k := range util.SortedKeys(kinds) {
				fmt.Printf("  %v: %v\n", k, kinds[k])
			}
		}
		fmt.Printf("candidates: %v\n", boundary.Candidates(main))
		return nil
	},
}

var boundariesCmd = &cobra.Command{
	Use:   "boundaries <document>",
	Short: "Prints the barline positions",
	Long:  `Prints the barline positions --at or --bars would produce for a document.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := boundariesOpts.Policy()
		if err != nil {
			return err
		}
		main, err := loadMainBar(args[0])
		if err != nil {
			return err
		}
		res, err := boundary.Get(main, policy)
		if err != nil {
			return err
		}
		fmt.Println(res)
		return nil
	},
}

func loadMainBar(path string) (model.Bar, error) {
	doc, err := score.Load(path)
	if err != nil {
		return model.Bar{}, err
	}
	return doc.MainBar(model.NewIDAllocator(0))
}
