package domain

import "time"

// SpecialtyAll disables the specialty predicate
const SpecialtyAll = "all"

// DateRange is an inclusive time window. A nil bound leaves that side open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) Unbounded() bool {
	return d.From == nil && d.To == nil
}

// Bounded reports whether both sides of the range are set
func (d DateRange) Bounded() bool {
	return d.From != nil && d.To != nil
}

// FilterSpec is the immutable input of one filtering pass
type FilterSpec struct {
	DateRange   DateRange
	Specialty   string // SpecialtyAll or a department/specialty name
	SearchQuery string
}

// IdentityFilter accepts every record
func IdentityFilter() FilterSpec {
	return FilterSpec{Specialty: SpecialtyAll}
}

type ReportTab string

const (
	ReportTabAll           ReportTab = "all"
	ReportTabAdmissions    ReportTab = "admissions"
	ReportTabConsultations ReportTab = "consultations"
	ReportTabAppointments  ReportTab = "appointments"
)

// Includes reports whether records of kind belong on the tab
func (t ReportTab) Includes(kind RecordKind) bool {
	switch t {
	case ReportTabAll, "":
		return true
	case ReportTabAdmissions:
		return kind == RecordKindAdmission
	case ReportTabConsultations:
		return kind == RecordKindConsultation
	case ReportTabAppointments:
		return kind == RecordKindAppointment
	default:
		return false
	}
}

func (t ReportTab) Valid() bool {
	switch t {
	case ReportTabAll, ReportTabAdmissions, ReportTabConsultations, ReportTabAppointments:
		return true
	default:
		return false
	}
}
