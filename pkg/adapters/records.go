package adapters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/imd-care/care-reports/pkg/models/store"
)

var ErrInvalidDate = errors.New("invalid date")

const dateOnly = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnly,
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseTimestamp parses a source timestamp. ok is false for empty or
// unrecognised values.
func ParseTimestamp(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateBound parses one side of a date filter. An empty value leaves the
// side open.
func ParseDateBound(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, ok := ParseTimestamp(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return &t, nil
}

// ParseDateRange parses both bounds of a date filter. A date-only upper bound
// covers the whole day.
func ParseDateRange(from, to string) (domain.DateRange, error) {
	lo, err := ParseDateBound(from)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("from: %w", err)
	}
	hi, err := ParseDateBound(to)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("to: %w", err)
	}
	if hi != nil {
		if _, err := time.Parse(dateOnly, strings.TrimSpace(to)); err == nil {
			end := hi.Add(24*time.Hour - time.Nanosecond)
			hi = &end
		}
	}
	return domain.DateRange{From: lo, To: hi}, nil
}

// FormatDateBound renders a bound back into its request form
func FormatDateBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parsedOrZero(raw string) time.Time {
	t, _ := ParseTimestamp(raw)
	return t
}

func MapAdmissionStoreToDomain(a store.Admission) domain.Admission {
	return domain.Admission{
		ID:            a.ID,
		Name:          a.Name,
		MRN:           a.MRN,
		Department:    a.Department,
		AdmissionDate: parsedOrZero(a.AdmissionDate),
		Diagnosis:     a.Diagnosis,
		DoctorName:    a.DoctorName,
		Status:        a.Status,
		SafetyType:    a.SafetyType,
	}
}

func MapConsultationStoreToDomain(c store.Consultation) domain.Consultation {
	return domain.Consultation{
		ID:                   c.ID,
		PatientName:          c.PatientName,
		MRN:                  c.MRN,
		Age:                  c.Age,
		Gender:               c.Gender,
		RequestingDepartment: c.RequestingDepartment,
		PatientLocation:      c.PatientLocation,
		Specialty:            c.Specialty,
		CreatedAt:            parsedOrZero(c.CreatedAt),
		Urgency:              c.Urgency,
		Reason:               c.Reason,
		Status:               c.Status,
		DoctorName:           c.DoctorName,
	}
}

func MapAppointmentStoreToDomain(a store.Appointment) domain.Appointment {
	return domain.Appointment{
		ID:              a.ID,
		PatientName:     a.PatientName,
		MedicalNumber:   a.MedicalNumber,
		Specialty:       a.Specialty,
		CreatedAt:       parsedOrZero(a.CreatedAt),
		AppointmentType: a.AppointmentType,
		Status:          a.Status,
		Notes:           a.Notes,
	}
}

func MapRecordSetStoreToDomain(set store.RecordSet) domain.Collections {
	out := domain.Collections{
		Admissions:    make([]domain.Admission, 0, len(set.Admissions)),
		Consultations: make([]domain.Consultation, 0, len(set.Consultations)),
		Appointments:  make([]domain.Appointment, 0, len(set.Appointments)),
	}
	for _, a := range set.Admissions {
		out.Admissions = append(out.Admissions, MapAdmissionStoreToDomain(a))
	}
	for _, c := range set.Consultations {
		out.Consultations = append(out.Consultations, MapConsultationStoreToDomain(c))
	}
	for _, a := range set.Appointments {
		out.Appointments = append(out.Appointments, MapAppointmentStoreToDomain(a))
	}
	return out
}
