package sections

import (
	"fmt"
	"math"
	"strconv"

	"github.com/imd-care/care-reports/pkg/models/domain"
)

const (
	TitleSummary     = "Summary Statistics"
	TitleDepartments = "Department Statistics"
	TitleSafety      = "Safety Admission Statistics"
	TitleUrgency     = "Consultation Urgency Distribution"

	StatActivePatients      = "Active Patients"
	StatActiveConsultations = "Active Consultations"
	StatOccupancyRate       = "Occupancy Rate"

	statusActive = "active"
)

// DefaultDepartments is the canonical department order of the administrative report
var DefaultDepartments = []string{
	"Internal Medicine",
	"Pulmonology",
	"Neurology",
	"Gastroenterology",
	"Rheumatology",
	"Endocrinology",
	"Hematology",
	"Infectious Disease",
	"Thrombosis Medicine",
	"Immunology & Allergy",
}

// Percent returns count as a rounded percentage of total. A zero total is
// treated as 1 so the result is 0 rather than NaN.
func Percent(count, total float64) float64 {
	if total == 0 {
		total = 1
	}
	return math.Round(count / total * 100)
}

// GroupCount counts occurrences of each key. With a reference list, every
// reference key is reported in reference order (zero counts included) and keys
// outside the list follow in first-seen order. Without one, keys are reported
// in first-seen order. Keys are compared as-is, without case folding.
func GroupCount(keys []string, reference []string) []domain.Stat {
	counts := make(map[string]float64, len(keys))
	var seen []string
	for _, k := range keys {
		if _, ok := counts[k]; !ok {
			seen = append(seen, k)
		}
		counts[k]++
	}

	stats := make([]domain.Stat, 0, len(reference)+len(seen))
	listed := make(map[string]struct{}, len(reference))
	for _, k := range reference {
		if _, dup := listed[k]; dup {
			continue
		}
		listed[k] = struct{}{}
		stats = append(stats, domain.Stat{Label: k, Value: counts[k]})
	}
	for _, k := range seen {
		if _, ok := listed[k]; ok {
			continue
		}
		stats = append(stats, domain.Stat{Label: k, Value: counts[k]})
	}
	return stats
}

func sum(stats []domain.Stat) float64 {
	total := 0.0
	for _, s := range stats {
		total += s.Value
	}
	return total
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%s%%", formatCount(v))
}

func activeAdmissions(records []domain.Record) []domain.Admission {
	var out []domain.Admission
	for _, rec := range records {
		if rec.Kind == domain.RecordKindAdmission && rec.Admission != nil && rec.Admission.Status == statusActive {
			out = append(out, *rec.Admission)
		}
	}
	return out
}

func activeConsultations(records []domain.Record) []domain.Consultation {
	var out []domain.Consultation
	for _, rec := range records {
		if rec.Kind == domain.RecordKindConsultation && rec.Consultation != nil && rec.Consultation.Status == statusActive {
			out = append(out, *rec.Consultation)
		}
	}
	return out
}

// Summary reports active patients, active consultations and the occupancy
// rate against capacity beds
func Summary(admissions, consultations []domain.Record, capacity int) domain.Section {
	patients := float64(len(activeAdmissions(admissions)))
	active := float64(len(activeConsultations(consultations)))
	occupancy := Percent(patients, float64(capacity))

	return domain.Section{
		Title: TitleSummary,
		Columns: []domain.Column{
			{Header: "Metric", Auto: true},
			{Header: "Value", Width: 40},
		},
		Rows: []domain.Row{
			{Cells: []string{StatActivePatients, formatCount(patients)}},
			{Cells: []string{StatActiveConsultations, formatCount(active)}},
			{Cells: []string{StatOccupancyRate, formatPercent(occupancy)}},
		},
		Stats: []domain.Stat{
			{Label: StatActivePatients, Value: patients},
			{Label: StatActiveConsultations, Value: active},
			{Label: StatOccupancyRate, Value: occupancy},
		},
	}
}

// Departments counts active admissions and active consultations per
// department. The section stats hold the active admission counts.
func Departments(admissions, consultations []domain.Record, reference []string) domain.Section {
	var keys []string
	for _, a := range activeAdmissions(admissions) {
		keys = append(keys, a.Department)
	}
	patientStats := GroupCount(keys, reference)

	consultCounts := make(map[string]float64)
	var extra []string
	for _, c := range activeConsultations(consultations) {
		consultCounts[c.Specialty]++
		extra = append(extra, c.Specialty)
	}

	// departments that only show up through consultations still get a row
	listed := make([]string, 0, len(patientStats))
	for _, s := range patientStats {
		listed = append(listed, s.Label)
	}
	stats := GroupCount(append(keys, extra...), listed)
	for i := range stats {
		stats[i].Value = 0
		for _, ps := range patientStats {
			if ps.Label == stats[i].Label {
				stats[i].Value = ps.Value
				break
			}
		}
	}

	rows := make([]domain.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, domain.Row{Cells: []string{
			s.Label,
			formatCount(s.Value),
			formatCount(consultCounts[s.Label]),
		}})
	}

	return domain.Section{
		Title: TitleDepartments,
		Columns: []domain.Column{
			{Header: "Department", Auto: true},
			{Header: "Active Patients", Width: 40},
			{Header: "Pending Consultations", Width: 45},
		},
		Rows:  rows,
		Stats: stats,
	}
}

// SafetyTypes groups admissions carrying a safety type in discovery order
func SafetyTypes(admissions []domain.Record) domain.Section {
	var keys []string
	for _, rec := range admissions {
		if rec.Kind == domain.RecordKindAdmission && rec.Admission != nil && rec.Admission.SafetyType != "" {
			keys = append(keys, rec.Admission.SafetyType)
		}
	}
	section := shareSection(TitleSafety, "Safety Type", GroupCount(keys, nil))
	for i, s := range section.Stats {
		section.Rows[i].Badge = SafetyTypeBadge(Capitalize(s.Label))
	}
	return section
}

// Urgencies groups consultations by urgency level in discovery order
func Urgencies(consultations []domain.Record) domain.Section {
	var keys []string
	for _, rec := range consultations {
		if rec.Kind == domain.RecordKindConsultation && rec.Consultation != nil {
			keys = append(keys, rec.Consultation.Urgency)
		}
	}
	section := shareSection(TitleUrgency, "Urgency Level", GroupCount(keys, nil))
	for i, s := range section.Stats {
		section.Rows[i].Badge = UrgencyBadge(s.Label)
	}
	return section
}

// shareSection renders counts with their share of the section total
func shareSection(title, label string, stats []domain.Stat) domain.Section {
	total := sum(stats)
	rows := make([]domain.Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, domain.Row{Cells: []string{
			Capitalize(s.Label),
			formatCount(s.Value),
			formatPercent(Percent(s.Value, total)),
		}})
	}

	return domain.Section{
		Title: title,
		Columns: []domain.Column{
			{Header: label, Auto: true},
			{Header: "Count", Width: 30},
			{Header: "Share", Width: 30},
		},
		Rows:  rows,
		Stats: stats,
	}
}
