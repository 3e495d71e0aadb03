package survey

import (
	"context"
	"fmt"
	"sync"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Loader produces the raw dataset of a session.
type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Prepare loads and normalizes the session dataset. Load failures, including
// missing columns, are returned as is for the caller to report.
func Prepare(ctx context.Context, loader Loader) (*domain.Dataset, error) {
	raw, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	ds, err := Normalize(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalize dataset: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("records", ds.Len()).
		Int("columns", len(ds.Columns())).
		Msg("dataset prepared")
	return ds, nil
}

// Session holds the dataset of one run. The first call to Dataset loads and
// normalizes it; later calls share the same read-only result, or the same error.
type Session struct {
	loader Loader

	once sync.Once
	ds   *domain.Dataset
	err  error
}

func NewSession(loader Loader) *Session {
	return &Session{loader: loader}
}

func (s *Session) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.once.Do(func() {
		s.ds, s.err = Prepare(ctx, s.loader)
	})
	return s.ds, s.err
}
