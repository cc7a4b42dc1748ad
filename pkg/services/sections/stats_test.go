package sections

import (
	"testing"

	"github.com/imd-care/care-reports/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	assert.Equal(t, 75.0, Percent(3, 4))
	assert.Equal(t, 33.0, Percent(1, 3))
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 300.0, Percent(3, 0)) // denominator defaults to 1
}

func TestGroupCount_DiscoveryOrder(t *testing.T) {
	stats := GroupCount([]string{"urgent", "routine", "urgent", "Urgent"}, nil)

	assert.Equal(t, []domain.Stat{
		{Label: "urgent", Value: 2},
		{Label: "routine", Value: 1},
		{Label: "Urgent", Value: 1},
	}, stats)
}

func TestGroupCount_ReferenceOrder(t *testing.T) {
	stats := GroupCount(
		[]string{"Cardiology", "Neurology", "Neurology", "Oncology"},
		[]string{"Pulmonology", "Neurology"},
	)

	assert.Equal(t, []domain.Stat{
		{Label: "Pulmonology", Value: 0},
		{Label: "Neurology", Value: 2},
		{Label: "Cardiology", Value: 1},
		{Label: "Oncology", Value: 1},
	}, stats)
}

func TestSafetyTypes_Shares(t *testing.T) {
	// Given three emergency and one observation safety admissions
	var admissions []domain.Record
	for _, st := range []string{"Emergency", "Observation", "Emergency", "Emergency"} {
		admissions = append(admissions, domain.AdmissionRecord(domain.Admission{SafetyType: st}))
	}
	admissions = append(admissions, domain.AdmissionRecord(domain.Admission{}))

	// When
	section := SafetyTypes(admissions)

	// Then
	require.Len(t, section.Rows, 2)
	assert.Equal(t, []string{"Emergency", "3", "75%"}, section.Rows[0].Cells)
	assert.Equal(t, []string{"Observation", "1", "25%"}, section.Rows[1].Cells)
	assert.Equal(t, domain.BadgeToneDanger, section.Rows[0].Badge.Tone)

	// an unrelated empty category does not break the shares
	urgency := Urgencies(nil)
	assert.Empty(t, urgency.Rows)
}

func TestSafetyTypes_NoSafetyAdmissions(t *testing.T) {
	section := SafetyTypes([]domain.Record{domain.AdmissionRecord(domain.Admission{Name: "x"})})
	assert.Empty(t, section.Rows)
	assert.Empty(t, section.Stats)
}

func TestUrgencies_CapitalizedInDiscoveryOrder(t *testing.T) {
	var consultations []domain.Record
	for _, u := range []string{"routine", "emergency", "routine"} {
		consultations = append(consultations, domain.ConsultationRecord(domain.Consultation{Urgency: u}))
	}

	section := Urgencies(consultations)

	require.Len(t, section.Rows, 2)
	assert.Equal(t, []string{"Routine", "2", "67%"}, section.Rows[0].Cells)
	assert.Equal(t, []string{"Emergency", "1", "33%"}, section.Rows[1].Cells)
}

func TestSummary(t *testing.T) {
	admissions := []domain.Record{
		domain.AdmissionRecord(domain.Admission{Status: "active"}),
		domain.AdmissionRecord(domain.Admission{Status: "active"}),
		domain.AdmissionRecord(domain.Admission{Status: "discharged"}),
	}
	consultations := []domain.Record{
		domain.ConsultationRecord(domain.Consultation{Status: "active"}),
		domain.ConsultationRecord(domain.Consultation{Status: "closed"}),
	}

	t.Run("occupancy against capacity", func(t *testing.T) {
		section := Summary(admissions, consultations, 40)
		assert.Equal(t, []string{"Occupancy Rate", "5%"}, section.Rows[2].Cells)
		v, _ := section.Stat(StatActivePatients)
		assert.Equal(t, 2.0, v)
		v, _ = section.Stat(StatActiveConsultations)
		assert.Equal(t, 1.0, v)
	})

	t.Run("zero capacity does not divide by zero", func(t *testing.T) {
		section := Summary(nil, nil, 0)
		v, _ := section.Stat(StatOccupancyRate)
		assert.Equal(t, 0.0, v)
	})
}

func TestDepartments(t *testing.T) {
	admissions := []domain.Record{
		domain.AdmissionRecord(domain.Admission{Department: "Neurology", Status: "active"}),
		domain.AdmissionRecord(domain.Admission{Department: "Cardiology", Status: "active"}),
		domain.AdmissionRecord(domain.Admission{Department: "Neurology", Status: "discharged"}),
	}
	consultations := []domain.Record{
		domain.ConsultationRecord(domain.Consultation{Specialty: "Neurology", Status: "active"}),
		domain.ConsultationRecord(domain.Consultation{Specialty: "Dermatology", Status: "active"}),
	}

	section := Departments(admissions, consultations, []string{"Pulmonology", "Neurology"})

	require.Len(t, section.Rows, 4)
	assert.Equal(t, []string{"Pulmonology", "0", "0"}, section.Rows[0].Cells)
	assert.Equal(t, []string{"Neurology", "1", "1"}, section.Rows[1].Cells)
	assert.Equal(t, []string{"Cardiology", "1", "0"}, section.Rows[2].Cells)
	assert.Equal(t, []string{"Dermatology", "0", "1"}, section.Rows[3].Cells)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Emergency", Capitalize("emergency"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Élevé", Capitalize("élevé"))
}
