package survey

import (
	"context"
	"testing"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/stretchr/testify/require"
)

func rawDataset(t *testing.T, columns []string, rows ...[]string) *domain.Dataset {
	t.Helper()
	ds, err := domain.NewRawDataset(columns, rows)
	require.NoError(t, err)
	return ds
}

func normalized(t *testing.T, columns []string, rows ...[]string) *domain.Dataset {
	t.Helper()
	ds, err := Normalize(context.Background(), rawDataset(t, columns, rows...))
	require.NoError(t, err)
	return ds
}

func column(t *testing.T, ds *domain.Dataset, name string) []domain.Value {
	t.Helper()
	col, err := ds.Column(name)
	require.NoError(t, err)
	return col
}
