package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/pulse-atlas/pkg/services/config"
	"github.com/de-tools/pulse-atlas/pkg/services/survey"
	"github.com/de-tools/pulse-atlas/pkg/store/source"
	"github.com/rs/zerolog"
)

// Runner computes acts and personas over a dataset.
type Runner interface {
	Acts() []domain.ActInfo
	Run(ctx context.Context, ds *domain.Dataset, name string) (*domain.ActReport, error)
	Persona(ctx context.Context, ds *domain.Dataset, name string) (domain.PersonaResult, error)
}

// OpenFunc resolves a dataset URI into a loadable source.
type OpenFunc func(ctx context.Context, uri string, opts source.Options) (*source.Source, error)

// Env is shared by all commands. Config is set by the root command before any
// subcommand runs; DatasetOverride comes from the --dataset flag.
type Env struct {
	Runner          Runner
	Reporter        *export.Reporter
	Open            OpenFunc
	Config          *config.Config
	DatasetOverride string
}

func (e *Env) datasetURI() string {
	if e.DatasetOverride != "" {
		return e.DatasetOverride
	}
	if e.Config != nil {
		return e.Config.Dataset.Source
	}
	return config.DefaultDatasetPath
}

func (e *Env) openSource(ctx context.Context) (*source.Source, error) {
	open := e.Open
	if open == nil {
		open = source.Open
	}
	var opts source.Options
	if e.Config != nil {
		opts.S3Region = e.Config.Dataset.S3Region
	}
	return open(ctx, e.datasetURI(), opts)
}

// loadRaw reads the dataset without normalizing it.
func (e *Env) loadRaw(ctx context.Context) (*domain.Dataset, string, error) {
	src, err := e.openSource(ctx)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Str("source", src.URI).Msg("failed to close dataset source")
		}
	}()

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load dataset: %w", err)
	}
	return ds, src.URI, nil
}

// prepare loads and normalizes the session dataset.
func (e *Env) prepare(ctx context.Context) (*domain.Dataset, error) {
	src, err := e.openSource(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			zerolog.Ctx(ctx).Warn().Err(cerr).Str("source", src.URI).Msg("failed to close dataset source")
		}
	}()

	return survey.Prepare(ctx, src)
}
