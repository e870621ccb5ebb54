package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jimvekemans/dbt-academy/internal/logging"
	"github.com/jimvekemans/dbt-academy/internal/runner"
	"github.com/jimvekemans/dbt-academy/internal/secrets"
)

// dbtUsageHint lists the dbt commands shown when no arguments are given.
const dbtUsageHint = `--help
--version
compile
debug
run
test`

// newDbtCommand creates the pass-through dbt wrapper command.
func newDbtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dbt [args...]",
		Short: "Forward a command to the dbt CLI with streamed logging",
		Long: `Gathers project secrets, exports them to the environment, and runs the
external dbt tool with the given arguments. Child stdout is streamed
line-by-line into the log; collected stderr is emitted as a single error
entry after the child exits.`,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := getLogger(ctx)

			if len(args) == 0 {
				fmt.Println(logging.Box("", "dbt needs a command which tells it what to run."))
				fmt.Println(logging.Box("dbt commands", dbtUsageHint))
				return fmt.Errorf("no dbt command given")
			}

			store := secrets.NewStore(settings.ProjectDir, secrets.WithLogger(logger))
			if _, err := store.Gather(nil); err != nil {
				return err
			}
			if err := store.Export(); err != nil {
				return err
			}

			return runner.Run(ctx, logger, "dbt", args, nil)
		},
	}
}
