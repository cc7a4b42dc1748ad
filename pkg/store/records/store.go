package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/imd-care/care-reports/pkg/adapters"
	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/models/store"
	"github.com/imd-care/care-reports/pkg/store/duckdb"
)

// Store persists the clinical record collections. Adds upsert by id; lists
// return the newest records first.
type Store interface {
	AddAdmissions(ctx context.Context, records []store.Admission) error
	AddConsultations(ctx context.Context, records []store.Consultation) error
	AddAppointments(ctx context.Context, records []store.Appointment) error
	ListAdmissions(ctx context.Context) ([]store.Admission, error)
	ListConsultations(ctx context.Context) ([]store.Consultation, error)
	ListAppointments(ctx context.Context) ([]store.Appointment, error)
	Collections(ctx context.Context) (domain.Collections, error)
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

// insertEach prepares query once and executes it with the args of every record
func insertEach[T any](ctx context.Context, db *sql.DB, query string, records []T, args func(T) []any) error {
	if len(records) == 0 {
		return nil
	}

	stmt, err := duckdb.Conn(ctx, db).PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, args(record)...); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return nil
}

// anchorAt is the parsed instant stored next to a raw timestamp, nil when raw
// does not parse
func anchorAt(raw string) any {
	t, ok := adapters.ParseTimestamp(raw)
	if !ok {
		return nil
	}
	return t.UTC()
}

func (s *recordStore) AddAdmissions(ctx context.Context, records []store.Admission) error {
	query := `
		INSERT OR REPLACE INTO admissions (
			id, name, mrn, department, admission_date,
			diagnosis, doctor_name, status, safety_type, anchor_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return insertEach(ctx, s.db, query, records, func(a store.Admission) []any {
		return []any{
			a.ID, a.Name, a.MRN, a.Department, a.AdmissionDate,
			a.Diagnosis, a.DoctorName, a.Status, a.SafetyType, anchorAt(a.AdmissionDate),
		}
	})
}

func (s *recordStore) AddConsultations(ctx context.Context, records []store.Consultation) error {
	query := `
		INSERT OR REPLACE INTO consultations (
			id, patient_name, mrn, age, gender, requesting_department, patient_location,
			specialty, created_at, urgency, reason, status, doctor_name, anchor_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return insertEach(ctx, s.db, query, records, func(c store.Consultation) []any {
		return []any{
			c.ID, c.PatientName, c.MRN, c.Age, c.Gender, c.RequestingDepartment, c.PatientLocation,
			c.Specialty, c.CreatedAt, c.Urgency, c.Reason, c.Status, c.DoctorName, anchorAt(c.CreatedAt),
		}
	})
}

func (s *recordStore) AddAppointments(ctx context.Context, records []store.Appointment) error {
	query := `
		INSERT OR REPLACE INTO appointments (
			id, patient_name, medical_number, specialty, created_at,
			appointment_type, status, notes, anchor_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return insertEach(ctx, s.db, query, records, func(a store.Appointment) []any {
		return []any{
			a.ID, a.PatientName, a.MedicalNumber, a.Specialty, a.CreatedAt,
			a.AppointmentType, a.Status, a.Notes, anchorAt(a.CreatedAt),
		}
	})
}

func (s *recordStore) ListAdmissions(ctx context.Context) ([]store.Admission, error) {
	query := `
		SELECT id, name, mrn, department, admission_date, diagnosis, doctor_name, status, safety_type
		FROM admissions
		ORDER BY anchor_at DESC NULLS LAST, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query admissions: %w", err)
	}
	defer rows.Close()

	out := make([]store.Admission, 0)
	for rows.Next() {
		var (
			a                                         store.Admission
			mrn, dept, date, diag, doctor, st, safety sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.Name, &mrn, &dept, &date, &diag, &doctor, &st, &safety); err != nil {
			return nil, fmt.Errorf("scan admission: %w", err)
		}
		a.MRN, a.Department, a.AdmissionDate = mrn.String, dept.String, date.String
		a.Diagnosis, a.DoctorName, a.Status, a.SafetyType = diag.String, doctor.String, st.String, safety.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *recordStore) ListConsultations(ctx context.Context) ([]store.Consultation, error) {
	query := `
		SELECT id, patient_name, mrn, age, gender, requesting_department, patient_location,
			specialty, created_at, urgency, reason, status, doctor_name
		FROM consultations
		ORDER BY anchor_at DESC NULLS LAST, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query consultations: %w", err)
	}
	defer rows.Close()

	out := make([]store.Consultation, 0)
	for rows.Next() {
		var (
			c                                          store.Consultation
			age                                        sql.NullInt64
			mrn, gender, reqDept, location, specialty  sql.NullString
			createdAt, urgency, reason, status, doctor sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.PatientName, &mrn, &age, &gender, &reqDept, &location,
			&specialty, &createdAt, &urgency, &reason, &status, &doctor,
		); err != nil {
			return nil, fmt.Errorf("scan consultation: %w", err)
		}
		c.MRN, c.Age, c.Gender = mrn.String, int(age.Int64), gender.String
		c.RequestingDepartment, c.PatientLocation, c.Specialty = reqDept.String, location.String, specialty.String
		c.CreatedAt, c.Urgency, c.Reason = createdAt.String, urgency.String, reason.String
		c.Status, c.DoctorName = status.String, doctor.String
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *recordStore) ListAppointments(ctx context.Context) ([]store.Appointment, error) {
	query := `
		SELECT id, patient_name, medical_number, specialty, created_at, appointment_type, status, notes
		FROM appointments
		ORDER BY anchor_at DESC NULLS LAST, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	out := make([]store.Appointment, 0)
	for rows.Next() {
		var (
			a                                          store.Appointment
			number, specialty, createdAt, kind, status sql.NullString
			notes                                      sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.PatientName, &number, &specialty, &createdAt, &kind, &status, &notes); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.MedicalNumber, a.Specialty, a.CreatedAt = number.String, specialty.String, createdAt.String
		a.AppointmentType, a.Status, a.Notes = kind.String, status.String, notes.String
		out = append(out, a)
	}
	return out, rows.Err()
}

// Collections loads the three collections and maps them to domain records
func (s *recordStore) Collections(ctx context.Context) (domain.Collections, error) {
	var (
		set store.RecordSet
		err error
	)
	if set.Admissions, err = s.ListAdmissions(ctx); err != nil {
		return domain.Collections{}, err
	}
	if set.Consultations, err = s.ListConsultations(ctx); err != nil {
		return domain.Collections{}, err
	}
	if set.Appointments, err = s.ListAppointments(ctx); err != nil {
		return domain.Collections{}, err
	}
	return adapters.MapRecordSetStoreToDomain(set), nil
}

// Import writes a record set in a single transaction
func Import(ctx context.Context, db *sql.DB, s Store, set store.RecordSet) error {
	return duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		if err := s.AddAdmissions(ctx, set.Admissions); err != nil {
			return fmt.Errorf("admissions: %w", err)
		}
		if err := s.AddConsultations(ctx, set.Consultations); err != nil {
			return fmt.Errorf("consultations: %w", err)
		}
		if err := s.AddAppointments(ctx, set.Appointments); err != nil {
			return fmt.Errorf("appointments: %w", err)
		}
		return nil
	})
}
