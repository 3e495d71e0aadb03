package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/store/dataset"
	"github.com/de-tools/pulse-atlas/pkg/store/duckdb"
	duckdbsurvey "github.com/de-tools/pulse-atlas/pkg/store/duckdb/survey"
	"github.com/de-tools/pulse-atlas/pkg/store/objectstore"
)

const (
	schemeS3     = "s3://"
	schemeDuckDB = "duckdb://"
)

// Options tune how remote sources are reached.
type Options struct {
	S3Region string
	// S3Client overrides the client built from the default AWS credential chain.
	S3Client objectstore.ObjectGetter
}

// Source is an opened dataset location. Close releases what opening acquired.
type Source struct {
	dataset.Loader
	URI   string
	close func() error
}

func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open resolves a dataset URI: s3://bucket/key, duckdb://path/to.db, or a CSV file path.
func Open(ctx context.Context, uri string, opts Options) (*Source, error) {
	switch {
	case uri == "":
		return nil, fmt.Errorf("dataset source is empty")

	case strings.HasPrefix(uri, schemeS3):
		client := opts.S3Client
		if client == nil {
			c, err := objectstore.NewClient(ctx, opts.S3Region)
			if err != nil {
				return nil, err
			}
			client = c
		}
		loader, err := objectstore.NewLoader(client, uri)
		if err != nil {
			return nil, err
		}
		return &Source{Loader: loader, URI: uri}, nil

	case strings.HasPrefix(uri, schemeDuckDB):
		path := strings.TrimPrefix(uri, schemeDuckDB)
		if path == "" {
			return nil, fmt.Errorf("duckdb source %q has no database path", uri)
		}
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: path})
		if err != nil {
			return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := duckdbsurvey.NewStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Source{Loader: store, URI: uri, close: db.Close}, nil

	default:
		return &Source{Loader: dataset.NewFileLoader(uri), URI: uri}, nil
	}
}
