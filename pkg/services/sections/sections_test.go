package sections

import (
	"testing"
	"time"

	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_AdmissionRows(t *testing.T) {
	admitted := time.Date(2024, 2, 10, 9, 30, 0, 0, time.UTC)
	records := []domain.Record{
		domain.AdmissionRecord(domain.Admission{
			Name:          "Layla Haddad",
			MRN:           "MRN-1001",
			Department:    "Neurology",
			AdmissionDate: admitted,
			Diagnosis:     "Ischemic stroke",
			DoctorName:    "Dr. Samir",
			Status:        "active",
			SafetyType:    "Emergency",
		}),
		domain.AdmissionRecord(domain.Admission{
			Name:       "Karim Fares",
			MRN:        "MRN-1002",
			Department: "Hematology",
			Status:     "discharged",
		}),
		domain.ConsultationRecord(domain.Consultation{PatientName: "not an admission"}),
	}

	section := Build(domain.RecordKindAdmission, records)

	assert.Equal(t, TitleAdmissions, section.Title)
	assert.Equal(t, []string{"Patient Name", "MRN", "Department", "Admission Date", "Diagnosis", "Doctor", "Safety Type"}, section.Headers())
	require.Len(t, section.Rows, 2)

	assert.Equal(t, []string{"Layla Haddad", "MRN-1001", "Neurology", "10/02/2024", "Ischemic stroke", "Dr. Samir", "Emergency"}, section.Rows[0].Cells)
	assert.Equal(t, &domain.Badge{Text: "active", Tone: domain.BadgeToneSuccess}, section.Rows[0].Badge)

	// missing fields degrade to placeholders
	assert.Equal(t, []string{"Karim Fares", "MRN-1002", "Hematology", "N/A", "", "Not assigned", "N/A"}, section.Rows[1].Cells)
	assert.Equal(t, domain.BadgeToneNeutral, section.Rows[1].Badge.Tone)

	total, ok := section.Stat(StatTotal)
	assert.True(t, ok)
	assert.Equal(t, 2.0, total)
}

func TestBuild_ConsultationRows(t *testing.T) {
	records := []domain.Record{
		domain.ConsultationRecord(domain.Consultation{
			PatientName: "Omar Aziz",
			MRN:         "MRN-2001",
			Specialty:   "Pulmonology",
			CreatedAt:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Urgency:     "emergency",
			Reason:      "Acute dyspnea",
		}),
	}

	section := Build(domain.RecordKindConsultation, records)

	require.Len(t, section.Rows, 1)
	assert.Equal(t, []string{"Omar Aziz", "MRN-2001", "Pulmonology", "01/03/2024", "EMERGENCY", "Acute dyspnea"}, section.Rows[0].Cells)
	assert.Equal(t, domain.BadgeToneDanger, section.Rows[0].Badge.Tone)
	assert.True(t, section.Columns[len(section.Columns)-1].Auto)
}

func TestBuild_AppointmentRows(t *testing.T) {
	records := []domain.Record{
		domain.AppointmentRecord(domain.Appointment{
			PatientName:     "Nour Saleh",
			MedicalNumber:   "MRN-3001",
			Specialty:       "Rheumatology",
			CreatedAt:       time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			AppointmentType: "regular",
			Status:          "pending",
		}),
	}

	section := Build(domain.RecordKindAppointment, records)

	require.Len(t, section.Rows, 1)
	assert.Equal(t, []string{"Nour Saleh", "MRN-3001", "Rheumatology", "04/03/2024", "REGULAR", "PENDING", ""}, section.Rows[0].Cells)
	assert.Equal(t, domain.BadgeToneInfo, section.Rows[0].Badge.Tone)
}

func TestBuild_EmptyInput(t *testing.T) {
	section := Build(domain.RecordKindConsultation, nil)
	assert.Empty(t, section.Rows)
	total, _ := section.Stat(StatTotal)
	assert.Zero(t, total)
}

func TestBadges(t *testing.T) {
	tests := []struct {
		name  string
		badge *domain.Badge
		want  domain.BadgeTone
	}{
		{"emergency urgency", UrgencyBadge("emergency"), domain.BadgeToneDanger},
		{"urgent urgency", UrgencyBadge("urgent"), domain.BadgeToneWarning},
		{"routine urgency", UrgencyBadge("routine"), domain.BadgeToneSuccess},
		{"urgent appointment", AppointmentTypeBadge("urgent"), domain.BadgeToneDanger},
		{"regular appointment", AppointmentTypeBadge("regular"), domain.BadgeToneInfo},
		{"pending status", AppointmentStatusBadge("pending"), domain.BadgeToneWarning},
		{"completed status", AppointmentStatusBadge("completed"), domain.BadgeToneSuccess},
		{"cancelled status", AppointmentStatusBadge("cancelled"), domain.BadgeToneDanger},
		{"observation safety", SafetyTypeBadge("Observation"), domain.BadgeToneWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.badge)
			assert.Equal(t, tt.want, tt.badge.Tone)
		})
	}

	assert.Nil(t, UrgencyBadge(""))
}
