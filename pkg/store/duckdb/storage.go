package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// Each record table keeps its timestamp as received in the raw column and the
// parsed instant in anchor_at, NULL when the raw value does not parse.
const AdmissionsSchema = `
	CREATE TABLE IF NOT EXISTS admissions (
		id VARCHAR PRIMARY KEY,
		name VARCHAR,
		mrn VARCHAR,
		department VARCHAR,
		admission_date VARCHAR,
		diagnosis VARCHAR,
		doctor_name VARCHAR,
		status VARCHAR,
		safety_type VARCHAR,
		anchor_at TIMESTAMP,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const ConsultationsSchema = `
	CREATE TABLE IF NOT EXISTS consultations (
		id VARCHAR PRIMARY KEY,
		patient_name VARCHAR,
		mrn VARCHAR,
		age INTEGER,
		gender VARCHAR,
		requesting_department VARCHAR,
		patient_location VARCHAR,
		specialty VARCHAR,
		created_at VARCHAR,
		urgency VARCHAR,
		reason VARCHAR,
		status VARCHAR,
		doctor_name VARCHAR,
		anchor_at TIMESTAMP,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const AppointmentsSchema = `
	CREATE TABLE IF NOT EXISTS appointments (
		id VARCHAR PRIMARY KEY,
		patient_name VARCHAR,
		medical_number VARCHAR,
		specialty VARCHAR,
		created_at VARCHAR,
		appointment_type VARCHAR,
		status VARCHAR,
		notes VARCHAR,
		anchor_at TIMESTAMP,
		imported_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	AdmissionsSchema,
	ConsultationsSchema,
	AppointmentsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
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

	return sql.OpenDB(c), nil
}
