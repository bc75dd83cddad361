package cmd

import (
	"encoding/json"
	"os"

	"comics-etl/feature/pipeline"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the whole pipeline",
	Long: `Cleanses the raw pages already on disk and aggregates them. With --fetch the pages
are pulled from the API first; with --publish the outputs are archived and loaded into
the warehouse afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fetch, _ := cmd.Flags().GetBool("fetch")
		publish, _ := cmd.Flags().GetBool("publish")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		a, err := bootstrap(needs{api: fetch, publish: publish})
		if err != nil {
			return err
		}

		report := a.pipeline.Run(cmd.Context(), pipeline.RunOptions{Fetch: fetch, Publish: publish})

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(report)
		} else {
			renderReport(os.Stdout, report)
		}

		return a.finish(report.Stages...)
	},
}

func init() {
	runCmd.Flags().Bool("fetch", false, "Pull fresh pages from the API before cleansing")
	runCmd.Flags().Bool("publish", false, "Archive outputs and load the warehouse after aggregation")
	runCmd.Flags().Bool("json", false, "Print the run report as JSON")
	RootCmd.AddCommand(runCmd)
}
