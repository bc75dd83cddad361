package cmd

import (
	"os"

	"comics-etl/feature/pipeline"

	"github.com/spf13/cobra"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Archive the data tree and load the warehouse",
	Long: `Uploads raw pages, cleaned tables and result tables to the storage bucket
(STORAGE_ENABLED=true) and loads the tables into the database (DATABASE_ENABLED=true).
Raw pages already present in the bucket are not uploaded again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(needs{publish: true})
		if err != nil {
			return err
		}

		res := a.pipeline.Publish(cmd.Context())
		renderStages(os.Stdout, []pipeline.StageResult{res})
		return a.finish(res)
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
