package cmd

import (
	"fmt"

	"comics-etl/core/config"
	"comics-etl/core/logger"
	"comics-etl/feature/layout"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Check the data directory structure",
	Long:  `Reports the data folders that do not exist. With --fix they are created.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fix, _ := cmd.Flags().GetBool("fix")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		paths := layout.NewPaths(cfg.Pipeline.BaseDir)
		missing, err := layout.CheckStructure(paths)
		if err != nil {
			return err
		}

		if len(missing) == 0 {
			logg.Info("Data structure is complete", zap.String("base", paths.Base))
			return nil
		}

		if !fix {
			logg.Warn("Data structure is incomplete, run with --fix to create it", zap.Strings("missing", missing))
			return fmt.Errorf("%d folders missing", len(missing))
		}

		return layout.FixStructure(logg, missing)
	},
}

func init() {
	layoutCmd.Flags().Bool("fix", false, "Create the missing folders")
	RootCmd.AddCommand(layoutCmd)
}
