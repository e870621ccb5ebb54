// Package cli provides the command-line interface for dbt-academy.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jimvekemans/dbt-academy/internal/config"
	"github.com/jimvekemans/dbt-academy/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Package-level state populated by PersistentPreRunE.
var (
	settings   *Settings
	memHandler *logging.MemoryHandler
	startTime  time.Time
)

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbtacademy",
		Short: "dbt-academy - convenience layer around dbt",
		Long: `dbt-academy wraps a dbt project: it loads the project descriptors,
resolves secrets and target profiles, regenerates source definitions from
warehouse metadata, and forwards commands to the dbt CLI with streamed
logging.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			settings, err = LoadSettings(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			startTime = time.Now()
			memHandler = logging.NewMemoryHandler()
			logger := logging.New(cmd.ErrOrStderr(), settings.Verbose, memHandler)

			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("project-dir", ".", "Path to the dbt project directory")
	rootCmd.PersistentFlags().StringP("target", "t", "", "Target profile to use from profiles.yml")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newGenerateSourcesCommand())
	rootCmd.AddCommand(newDbtCommand())
	rootCmd.AddCommand(newDebugCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command and saves the run's log afterwards.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	saveRunLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// saveRunLog writes the recorded log entries into the project's logs
// directory. Best effort: a run whose project never resolved leaves no log.
func saveRunLog() {
	if settings == nil || memHandler == nil || len(memHandler.Entries()) == 0 {
		return
	}
	project, err := config.LoadProject(settings.ProjectDir)
	if err != nil {
		return
	}
	logsDir := project.LogsDir()
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return
	}
	name := fmt.Sprintf("%s_%s.json", project.Name, startTime.Format("20060102150405"))
	_ = memHandler.SaveJSON(filepath.Join(logsDir, name))
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return logging.Discard()
}
