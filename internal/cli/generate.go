package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jimvekemans/dbt-academy/internal/connection"
	"github.com/jimvekemans/dbt-academy/internal/dbt"
	"github.com/jimvekemans/dbt-academy/internal/secrets"
	"github.com/jimvekemans/dbt-academy/internal/sources"

	// Register the SingleStore dialect.
	_ "github.com/jimvekemans/dbt-academy/pkg/dialects/singlestore"
)

// generateSourcesOptions holds options for the generate-sources command.
type generateSourcesOptions struct {
	Database string
	Tables   []string
}

// newGenerateSourcesCommand creates the generate-sources command.
func newGenerateSourcesCommand() *cobra.Command {
	opts := &generateSourcesOptions{}

	cmd := &cobra.Command{
		Use:   "generate-sources",
		Short: "Regenerate a sources file from warehouse metadata",
		Long: `Connects to the target warehouse, discovers column and constraint
metadata through information_schema, and regenerates the
sources_<database>.yml file under the models/sources directory.`,
		Example: `  # Generate sources for the profile's database
  dbtacademy generate-sources

  # Generate sources for a specific database
  dbtacademy generate-sources --database landing

  # Restrict generation to specific tables
  dbtacademy generate-sources --database landing --tables orders customers`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateSources(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "database", "", "Database to generate sources from (default: the target profile's database)")
	cmd.Flags().StringSliceVar(&opts.Tables, "tables", nil, "Restrict generation to these tables")

	return cmd
}

func runGenerateSources(cmd *cobra.Command, opts *generateSourcesOptions) error {
	ctx := cmd.Context()
	logger := getLogger(ctx)

	mgr, err := dbt.NewManager(settings.ProjectDir, settings.Target, logger)
	if err != nil {
		return err
	}

	store := secrets.NewStore(settings.ProjectDir, secrets.WithLogger(logger))
	additional := map[string]string{}
	if opts.Database != "" {
		additional["database"] = opts.Database
	}
	if len(opts.Tables) > 0 {
		additional["tables"] = strings.Join(opts.Tables, ",")
	}
	if _, err := store.Gather(additional); err != nil {
		return err
	}

	details := store.ParseTarget(mgr.TargetOutput)

	conn, err := connection.NewManager(details, connection.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	database := opts.Database
	if database == "" {
		database = conn.Details()["database"]
	}
	if database == "" {
		return fmt.Errorf("no database selected: pass --database or set one in the target profile")
	}

	result, err := conn.Execute(ctx, sources.MetadataQuery(database), true)
	if err != nil {
		return err
	}
	if result.Err != "" {
		return fmt.Errorf("metadata query failed: %s", result.Err)
	}

	if len(opts.Tables) > 0 {
		result = sources.FilterTables(result, opts.Tables)
	}

	return mgr.RefreshSource(result, database)
}
