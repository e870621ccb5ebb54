package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jimvekemans/dbt-academy/internal/dbt"
)

// newDebugCommand creates the debug command, which prints the resolved
// project configuration without touching the warehouse.
func newDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Show the resolved project configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := getLogger(cmd.Context())

			mgr, err := dbt.NewManager(settings.ProjectDir, settings.Target, logger)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"Setting", "Value"})
			t.AppendRows([]table.Row{
				{"project", mgr.Project.Name},
				{"version", mgr.Project.Version},
				{"home", mgr.Project.Home},
				{"models dir", mgr.Project.ModelsDir()},
				{"macros dir", orNone(mgr.Project.MacrosDir())},
				{"seeds dir", orNone(mgr.Project.SeedsDir())},
				{"snapshots dir", orNone(mgr.Project.SnapshotsDir())},
				{"tests dir", orNone(mgr.Project.TestsDir())},
				{"analysis dir", orNone(mgr.Project.AnalysisDir())},
				{"sources dir", mgr.SourcesDir()},
				{"logs dir", mgr.Project.LogsDir()},
				{"target", mgr.TargetName},
				{"target type", fmt.Sprint(mgr.TargetOutput["type"])},
			})
			t.Render()
			return nil
		},
	}
}

func orNone(dir string) string {
	if dir == "" {
		return "(absent)"
	}
	return dir
}
