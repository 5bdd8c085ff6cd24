package cmd

import (
	"os"

	"github.com/jsphweid/barline/report"
	"github.com/jsphweid/barline/score"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	reportOpts     SplitOptions
	reportTemplate string
)

func init() {
	addPolicyFlags(reportCmd, &reportOpts)
	reportCmd.Flags().StringVarP(&reportTemplate, "template", "t", "", "file holding a text/template (sprig functions available) to render instead of the default report")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <document>",
	Short: "Creates a report",
	Long:  `Splits a document and prints a summary of every bar without writing files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tmpl string
		if reportTemplate != "" {
			data, err := os.ReadFile(reportTemplate)
			if err != nil {
				return errors.Wrap(err, "could not read template")
			}
			tmpl = string(data)
		}
		doc, err := score.Load(args[0])
		if err != nil {
			return err
		}
		res, err := splitDocument(doc, reportOpts)
		if err != nil {
			return err
		}
		return report.Render(os.Stdout, report.Summarize(doc.Name, res.bars, res.refits), tmpl)
	},
}
