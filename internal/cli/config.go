package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configMaxIterations int
	configDefaultModel  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update the workspace config",
	Long: `Without flags, prints the effective workspace configuration.
With flags, applies the overrides and persists them to troupe.yaml.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().IntVar(&configMaxIterations, "max-iterations", 0, "set the iteration ceiling")
	configCmd.Flags().StringVar(&configDefaultModel, "default-model", "", "set the default model")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	ws, logger, err := openWorkspace()
	if err != nil {
		return err
	}
	defer logger.Dispose()

	cfg := ws.Config()
	changed := false

	if configMaxIterations > 0 {
		if err := cfg.SetMaxIterations(configMaxIterations); err != nil {
			return err
		}
		changed = true
	}
	if cmd.Flags().Changed("default-model") {
		if err := cfg.SetDefaultModel(configDefaultModel); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		if err := ws.Save(); err != nil {
			return err
		}
	}

	fmt.Printf("workspace:          %s\n", ws.Root())
	fmt.Printf("actors folder:      %s\n", cfg.ActorsFolderName)
	fmt.Printf("logs folder:        %s\n", cfg.LogsFolderName)
	fmt.Printf("default model:      %s\n", orNone(cfg.DefaultModel))
	fmt.Printf("models:             %s\n", orNone(strings.Join(cfg.Models, ", ")))
	fmt.Printf("max iterations:     %d\n", cfg.MaxIterations)
	fmt.Printf("log bucket minutes: %d\n", cfg.LogBucketMinutes)

	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
