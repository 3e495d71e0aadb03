package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const utf8BOM = "\ufeff"

// Loader produces the raw survey dataset of a session.
type Loader interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// ReadCSV reads a header-first CSV into a raw dataset holding the required survey
// columns in schema order. Extra columns are dropped. A header lacking required
// columns fails with *domain.MissingColumnsError.
func ReadCSV(r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	positions, err := locate(header, domain.RequiredColumns())
	if err != nil {
		return nil, err
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make([]string, len(positions))
		for i, p := range positions {
			row[i] = record[p]
		}
		records = append(records, row)
	}

	return domain.NewRawDataset(domain.RequiredColumns(), records)
}

func locate(header []string, required []string) ([]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}

	positions := make([]int, 0, len(required))
	var missing []string
	for _, name := range required {
		p, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		positions = append(positions, p)
	}
	if len(missing) > 0 {
		return nil, &domain.MissingColumnsError{Columns: missing}
	}
	return positions, nil
}

type fileLoader struct {
	path string
}

// NewFileLoader reads the dataset from a local CSV file.
func NewFileLoader(path string) Loader {
	return &fileLoader{path: path}
}

func (l *fileLoader) Load(ctx context.Context) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.path, err)
	}

	logger.Info().
		Str("path", l.path).
		Int("records", ds.Len()).
		Msg("dataset loaded")
	return ds, nil
}
