package sections

import (
	"strings"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

const (
	TitleAdmissions    = "Active Admissions"
	TitleConsultations = "Medical Consultations"
	TitleAppointments  = "Clinic Appointments"

	StatTotal = "Total"
)

var (
	admissionColumns = []domain.Column{
		{Header: "Patient Name", Width: 30},
		{Header: "MRN", Width: 25},
		{Header: "Department", Width: 30},
		{Header: "Admission Date", Width: 25},
		{Header: "Diagnosis", Width: 35},
		{Header: "Doctor", Width: 25},
		{Header: "Safety Type", Width: 20},
	}

	consultationColumns = []domain.Column{
		{Header: "Patient Name", Width: 30},
		{Header: "MRN", Width: 25},
		{Header: "Specialty", Width: 30},
		{Header: "Date", Width: 25},
		{Header: "Urgency", Width: 20},
		{Header: "Reason", Auto: true},
	}

	appointmentColumns = []domain.Column{
		{Header: "Patient Name", Width: 30},
		{Header: "MRN", Width: 25},
		{Header: "Specialty", Width: 30},
		{Header: "Date", Width: 25},
		{Header: "Type", Width: 20},
		{Header: "Status", Width: 20},
		{Header: "Notes", Auto: true},
	}
)

// Build turns the filtered records of one variant into a section. Records of
// another kind are skipped.
func Build(kind domain.RecordKind, records []domain.Record) domain.Section {
	section := domain.Section{Kind: kind}

	switch kind {
	case domain.RecordKindAdmission:
		section.Title = TitleAdmissions
		section.Columns = cloneColumns(admissionColumns)
	case domain.RecordKindConsultation:
		section.Title = TitleConsultations
		section.Columns = cloneColumns(consultationColumns)
	case domain.RecordKindAppointment:
		section.Title = TitleAppointments
		section.Columns = cloneColumns(appointmentColumns)
	}

	section.Rows = make([]domain.Row, 0, len(records))
	for _, rec := range records {
		if rec.Kind != kind {
			continue
		}
		if row, ok := RowFor(rec); ok {
			section.Rows = append(section.Rows, row)
		}
	}

	section.Stats = []domain.Stat{{Label: StatTotal, Value: float64(len(section.Rows))}}
	return section
}

// RowFor maps a record to its display row. ok is false only when the variant
// payload is missing.
func RowFor(rec domain.Record) (domain.Row, bool) {
	switch rec.Kind {
	case domain.RecordKindAdmission:
		if rec.Admission == nil {
			return domain.Row{}, false
		}
		return admissionRow(*rec.Admission), true
	case domain.RecordKindConsultation:
		if rec.Consultation == nil {
			return domain.Row{}, false
		}
		return consultationRow(*rec.Consultation), true
	case domain.RecordKindAppointment:
		if rec.Appointment == nil {
			return domain.Row{}, false
		}
		return appointmentRow(*rec.Appointment), true
	default:
		return domain.Row{}, false
	}
}

func admissionRow(a domain.Admission) domain.Row {
	return domain.Row{
		Cells: []string{
			a.Name,
			a.MRN,
			a.Department,
			FormatDate(a.AdmissionDate),
			a.Diagnosis,
			orPlaceholder(a.DoctorName, PlaceholderNotAssigned),
			orPlaceholder(a.SafetyType, PlaceholderNotAvailable),
		},
		Badge: AdmissionStatusBadge(a.Status),
	}
}

func consultationRow(c domain.Consultation) domain.Row {
	return domain.Row{
		Cells: []string{
			c.PatientName,
			c.MRN,
			c.Specialty,
			FormatDate(c.CreatedAt),
			strings.ToUpper(c.Urgency),
			c.Reason,
		},
		Badge: UrgencyBadge(c.Urgency),
	}
}

func appointmentRow(a domain.Appointment) domain.Row {
	return domain.Row{
		Cells: []string{
			a.PatientName,
			a.MedicalNumber,
			a.Specialty,
			FormatDate(a.CreatedAt),
			strings.ToUpper(a.AppointmentType),
			strings.ToUpper(a.Status),
			a.Notes,
		},
		Badge: AppointmentTypeBadge(a.AppointmentType),
	}
}

func cloneColumns(cols []domain.Column) []domain.Column {
	out := make([]domain.Column, len(cols))
	copy(out, cols)
	return out
}
