package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var actorsCmd = &cobra.Command{
	Use:   "actors",
	Short: "List the actors discovered in the workspace",
	Args:  cobra.NoArgs,
	RunE:  runActors,
}

func init() {
	rootCmd.AddCommand(actorsCmd)
}

func runActors(cmd *cobra.Command, args []string) error {
	ws, logger, err := openWorkspace()
	if err != nil {
		return err
	}
	defer logger.Dispose()

	actors := ws.Actors()
	if len(actors) == 0 {
		fmt.Println("No actors found.")
		return nil
	}

	nameWidth := len("NAME")
	for _, a := range actors {
		if len(a.Name()) > nameWidth {
			nameWidth = len(a.Name())
		}
	}

	fmt.Printf("%-*s  %-9s  %s\n", nameWidth, "NAME", "BEHAVIOR", "ROLE")
	fmt.Printf("%s  %s  %s\n", strings.Repeat("-", nameWidth), "---------", "----")

	for _, a := range actors {
		def := a.Definition()
		behavior := "text"
		if def.Autopilot {
			behavior = "autopilot"
		}
		fmt.Printf("%-*s  %-9s  %s\n", nameWidth, def.Name, behavior, def.Role.Name)
	}

	return nil
}
