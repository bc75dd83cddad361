package cmd

import (
	"os"

	"comics-etl/feature/pipeline"

	"github.com/spf13/cobra"
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Join the cleaned tables and write the result tables",
	Long: `Reads the cleaned character and comic tables, counts the comics joined to every
character and writes final_results.csv and verified_results.csv under data/curated/aggregations/.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(needs{})
		if err != nil {
			return err
		}

		res := a.pipeline.Aggregate()
		renderStages(os.Stdout, []pipeline.StageResult{res})
		return a.finish(res)
	},
}

func init() {
	RootCmd.AddCommand(aggregateCmd)
}
