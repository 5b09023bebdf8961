package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/troupe-cli/troupe/internal/actor"
)

var actModel string

var actCmd = &cobra.Command{
	Use:   "act <actor> <prompt>",
	Short: "Invoke one actor once",
	Long: `Composes the actor's RBA prompt around the given text, sends it
to the responder, and prints the response. Autopilot actors apply their
changes directly and print nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runAct,
}

func init() {
	actCmd.Flags().StringVar(&actModel, "model", "", `model override for this call ("default" uses the workspace default)`)
	rootCmd.AddCommand(actCmd)
}

func runAct(cmd *cobra.Command, args []string) error {
	ws, logger, err := openWorkspace()
	if err != nil {
		return err
	}
	defer logger.Dispose()

	a, err := ws.GetByName(args[0])
	if err != nil {
		logger.CliError(err.Error())
		return err
	}

	outcome, err := a.Act(cmd.Context(), args[1], actor.ActOptions{Model: actModel})
	if err != nil {
		logger.CliError(err.Error())
		return err
	}

	if outcome.Applied {
		fmt.Println("changes applied")
		return nil
	}

	fmt.Println(outcome.Text)
	return nil
}
