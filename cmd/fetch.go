package cmd

import (
	"os"

	"comics-etl/core/marvel"
	"comics-etl/feature/pipeline"

	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [characters|comics]",
	Short: "Pull raw pages from the API",
	Long: `Pages through the collection and writes every page as a JSON file under
data/raw/<kind>/. Without an argument both collections are pulled, characters first.`,
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

		a, err := bootstrap(needs{api: true})
		if err != nil {
			return err
		}

		results := []pipeline.StageResult{a.pipeline.Layout()}
		for _, kind := range kinds {
			if results[len(results)-1].Err != nil {
				break
			}
			results = append(results, a.pipeline.Fetch(cmd.Context(), kind))
		}

		renderStages(os.Stdout, results)
		return a.finish(results...)
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)
}
