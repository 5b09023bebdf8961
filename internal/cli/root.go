// Package cli implements the troupe command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/troupe-cli/troupe/internal/config"
	"github.com/troupe-cli/troupe/internal/responder"
	"github.com/troupe-cli/troupe/internal/sessionlog"
	"github.com/troupe-cli/troupe/internal/workspace"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	workspacePath string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "troupe",
	Short: "Run named actor personas against an external responder",
	Long: `Troupe composes prompts from actor personas (role, acceptance
criteria, intent), sends them to an external responder, and can loop an
actor's own output back as its next input until a stop condition fires.
Every step is recorded in the workspace session log.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}

		// Workspace-local .env feeds credentials to the responder
		// process.
		envPath := filepath.Join(workspacePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("failed to load %s: %w", envPath, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("troupe version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", ".", "workspace root path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// openWorkspace loads the workspace at the configured path and binds a
// fresh session logger under its logs folder.
func openWorkspace() (*workspace.Workspace, *sessionlog.Logger, error) {
	resolver := &config.Resolver{}

	cfg, err := resolver.Resolve(workspacePath)
	if err != nil {
		return nil, nil, err
	}

	logger := sessionlog.New(sessionlog.NewSession(cfg.LogBucketMinutes))
	logger.Command(strings.Join(os.Args[1:], " "))

	ws := workspace.New(workspace.Options{
		Resolver:  resolver,
		Responder: responder.NewCLI(),
		Log:       logger,
	})
	if err := ws.Load(workspacePath); err != nil {
		return nil, nil, err
	}

	session := logger.Session()
	if err := logger.Bind(ws.LogsDir(), sessionName(session.StartedAt, session.ID)); err != nil {
		return nil, nil, err
	}

	return ws, logger, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// sessionName renders the log folder name for one session.
func sessionName(t time.Time, id string) string {
	return t.Format("2006-01-02_150405") + "-" + shortID(id)
}
