package survey

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/de-tools/pulse-atlas/pkg/models/domain"
	"github.com/de-tools/pulse-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store keeps the raw survey rows of one dataset in DuckDB.
// Only source text is stored; aggregates are always recomputed.
type Store interface {
	// Import replaces the stored rows with the rows of ds
	Import(ctx context.Context, source string, ds *domain.Dataset) (int, error)
	// Load returns the stored rows as a raw dataset in import order
	Load(ctx context.Context) (*domain.Dataset, error)
	Count(ctx context.Context) (int64, error)
}

type surveyStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &surveyStore{
		db: db,
	}, nil
}

func (s *surveyStore) Import(ctx context.Context, source string, ds *domain.Dataset) (int, error) {
	logger := zerolog.Ctx(ctx)
	columns := domain.RequiredColumns()

	cols := make([][]domain.Value, len(columns))
	for i, name := range columns {
		col, err := ds.Column(name)
		if err != nil {
			return 0, fmt.Errorf("import: %w", err)
		}
		cols[i] = col
	}

	query := fmt.Sprintf(
		`INSERT INTO survey_responses (row_id, %s) VALUES (?%s)`,
		strings.Join(columns, ", "),
		strings.Repeat(", ?", len(columns)),
	)

	err := duckdb.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM survey_responses`); err != nil {
			return fmt.Errorf("clear survey responses: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare statement: %w", err)
		}
		defer stmt.Close()

		args := make([]interface{}, len(columns)+1)
		for row := 0; row < ds.Len(); row++ {
			args[0] = row
			for i, col := range cols {
				args[i+1] = col[row].Text
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("insert row %d: %w", row, err)
			}
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO import_log (source, records) VALUES (?, ?)`, source, ds.Len())
		if err != nil {
			return fmt.Errorf("record import: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info().
		Str("source", source).
		Int("records", ds.Len()).
		Msg("survey imported")
	return ds.Len(), nil
}

func (s *surveyStore) Load(ctx context.Context) (*domain.Dataset, error) {
	columns := domain.RequiredColumns()
	query := fmt.Sprintf(
		`SELECT %s FROM survey_responses ORDER BY row_id`,
		strings.Join(columns, ", "),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query survey responses: %w", err)
	}
	defer rows.Close()

	records, err := scanSurveyRows(rows, len(columns))
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int("records", len(records)).
		Msg("dataset loaded from duckdb")
	return domain.NewRawDataset(columns, records)
}

func (s *surveyStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey_responses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count survey responses: %w", err)
	}
	return total, nil
}

func scanSurveyRows(rows *sql.Rows, width int) ([][]string, error) {
	records := make([][]string, 0)
	for rows.Next() {
		cells := make([]sql.NullString, width)
		dest := make([]interface{}, width)
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan survey response: %w", err)
		}

		record := make([]string, width)
		for i, cell := range cells {
			// NULL reads back as blank, which normalizes to missing
			record[i] = cell.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate survey responses: %w", err)
	}
	return records, nil
}
