package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// SurveyResponsesSchema stores survey rows as raw text; typing happens after loading.
const SurveyResponsesSchema = `
	CREATE TABLE IF NOT EXISTS survey_responses (
		row_id INTEGER NOT NULL,
		Work_Location VARCHAR,
		Industry VARCHAR,
		Region VARCHAR,
		Years_of_Experience VARCHAR,
		Stress_Level VARCHAR,
		Social_Isolation_Rating VARCHAR,
		Work_Life_Balance_Rating VARCHAR,
		Number_of_Virtual_Meetings VARCHAR,
		Hours_Worked_Per_Week VARCHAR,
		Company_Support_for_Remote_Work VARCHAR,
		Access_to_Mental_Health_Resources VARCHAR,
		Mental_Health_Condition VARCHAR,
		Productivity_Change VARCHAR,
		Sleep_Quality VARCHAR,
		Satisfaction_with_Remote_Work VARCHAR,
		Physical_Activity VARCHAR
	);
`

const ImportLogSchema = `
	CREATE TABLE IF NOT EXISTS import_log (
		source VARCHAR NOT NULL,
		records INTEGER NOT NULL,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	SurveyResponsesSchema,
	ImportLogSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
