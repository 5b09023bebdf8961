package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/troupe-cli/troupe/internal/actor"
	"github.com/troupe-cli/troupe/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Scaffold a new workspace",
	Long: `Creates a workspace at the given path (default: the current
directory): a troupe.yaml config, the actors folder with a sample actor,
and the logs folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := workspacePath
	if len(args) == 1 {
		root = args[0]
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	configPath := filepath.Join(root, config.Filename)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("workspace already initialized: %s exists", configPath)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(root); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Join(root, cfg.LogsFolderName), 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	sample := actor.Definition{
		Name: "assistant",
		Dir:  filepath.Join(root, cfg.ActorsFolderName, "assistant"),
		Role: actor.Field{
			Name:   "Assistant",
			Prompt: "You are a concise, helpful assistant.",
		},
		Intent: actor.Field{
			Name:   "Answer",
			Prompt: "Answer the prompt directly.",
		},
	}
	if err := sample.Save(); err != nil {
		return err
	}

	fmt.Printf("initialized workspace in %s\n", root)
	return nil
}
