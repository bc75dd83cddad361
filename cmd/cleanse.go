package cmd

import (
	"os"

	"comics-etl/core/marvel"
	"comics-etl/feature/pipeline"

	"github.com/spf13/cobra"
)

// cleanseCmd represents the cleanse command
var cleanseCmd = &cobra.Command{
	Use:       "cleanse [characters|comics]",
	Short:     "Build the cleaned tables from the raw pages",
	Long:      `Reads data/raw/<kind>/*.json and writes the cleaned CSV under data/stage/<kind>/.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(marvel.KindCharacters), string(marvel.KindComics)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds := marvel.Kinds
		if len(args) == 1 {
			kind, err := marvel.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []marvel.Kind{kind}
		}

		a, err := bootstrap(needs{})
		if err != nil {
			return err
		}

		var results []pipeline.StageResult
		for _, kind := range kinds {
			var res pipeline.StageResult
			if kind == marvel.KindCharacters {
				res = a.pipeline.CleanseCharacters()
			} else {
				res = a.pipeline.CleanseComics()
			}
			results = append(results, res)
			if res.Err != nil {
				break
			}
		}

		renderStages(os.Stdout, results)
		return a.finish(results...)
	},
}

func init() {
	RootCmd.AddCommand(cleanseCmd)
}
