package commands

import (
	"fmt"

	"github.com/de-tools/pulse-atlas/pkg/store/duckdb"
	duckdbsurvey "github.com/de-tools/pulse-atlas/pkg/store/duckdb/survey"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	env    *Env
	dbPath string
}

func NewImportCmd(env *Env) *cobra.Command {
	ic := &ImportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the raw dataset into a DuckDB file",
		Long: "Copy the raw dataset into a DuckDB file. " +
			"Later runs can read it back with --dataset duckdb://<path>.",
		Args: cobra.NoArgs,
		RunE: ic.run,
	}

	cmd.Flags().StringVar(&ic.dbPath, "db", "", "DuckDB file to write (default store.duckdb_path)")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	path := ic.dbPath
	if path == "" && ic.env.Config != nil {
		path = ic.env.Config.Store.DuckDBPath
	}
	if path == "" {
		return fmt.Errorf("no DuckDB path given, use --db")
	}

	raw, uri, err := ic.env.loadRaw(ctx)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := duckdbsurvey.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create survey store: %w", err)
	}

	n, err := store.Import(ctx, uri, raw)
	if err != nil {
		return err
	}

	logger.Debug().Str("db", path).Int("records", n).Msg("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records from %s into %s\n", n, uri, path)
	return nil
}
