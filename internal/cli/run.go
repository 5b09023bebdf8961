package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/troupe-cli/troupe/internal/actor"
	"github.com/troupe-cli/troupe/internal/loop"
)

var (
	runMaxIterations  int
	runContinuePrompt string
	runStopKeyword    string
	runErrorKeyword   string
)

var runCmd = &cobra.Command{
	Use:   "run <actor[,actor...]> <prompt>",
	Short: "Run actors iteratively until a stop condition fires",
	Long: `Runs one or many actors in a loop. A single actor feeds its own
output (or the continue prompt) back as the next input and stops when a
result contains the stop or error keyword. Multiple actors all receive
the same prompt each iteration; their joined results form the next one.`,
	Args: cobra.ExactArgs(2),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runMaxIterations, "max-iterations", 0, "iteration ceiling (0 uses the workspace config)")
	runCmd.Flags().StringVar(&runContinuePrompt, "continue-prompt", "", "prompt for iterations after the first")
	runCmd.Flags().StringVar(&runStopKeyword, "stop-keyword", loop.DefaultStopKeyword, "substring that completes a single-actor run")
	runCmd.Flags().StringVar(&runErrorKeyword, "error-keyword", loop.DefaultErrorKeyword, "substring that fails a single-actor run")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ws, logger, err := openWorkspace()
	if err != nil {
		return err
	}
	defer logger.Dispose()

	var actors []*actor.Actor
	for _, name := range strings.Split(args[0], ",") {
		a, err := ws.GetByName(strings.TrimSpace(name))
		if err != nil {
			logger.CliError(err.Error())
			return err
		}
		actors = append(actors, a)
	}

	maxIterations := runMaxIterations
	if maxIterations <= 0 {
		maxIterations = ws.Config().MaxIterations
	}

	runner := loop.Runner{
		StopKeyword:  runStopKeyword,
		ErrorKeyword: runErrorKeyword,
		Log:          logger,
		Observer: func(iteration int, results []string) {
			fmt.Printf("--- iteration %d (%d results)\n", iteration, len(results))
		},
	}

	results, state := runner.Run(cmd.Context(), actors, args[1], runContinuePrompt, maxIterations)

	for _, result := range results {
		if result != "" {
			fmt.Println(result)
		}
	}
	fmt.Printf("run %s after %d result(s)\n", state, len(results))

	if state == loop.StateError {
		return fmt.Errorf("run ended with state %s", state)
	}
	return nil
}
