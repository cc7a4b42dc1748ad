package domain

import "time"

type RecordKind string

const (
	RecordKindAdmission    RecordKind = "admission"
	RecordKindConsultation RecordKind = "consultation"
	RecordKindAppointment  RecordKind = "appointment"
)

// Admission is an inpatient stay as listed on the admissions board
type Admission struct {
	ID            string
	Name          string
	MRN           string
	Department    string
	AdmissionDate time.Time // zero when missing or unparseable
	Diagnosis     string
	DoctorName    string
	Status        string // active, discharged
	SafetyType    string // Emergency, Observation, ...
}

// Consultation is an inter-department consultation request
type Consultation struct {
	ID                   string
	PatientName          string
	MRN                  string
	Age                  int
	Gender               string
	RequestingDepartment string
	PatientLocation      string
	Specialty            string
	CreatedAt            time.Time
	Urgency              string // emergency, urgent, routine
	Reason               string
	Status               string
	DoctorName           string
}

// Appointment is a clinic appointment
type Appointment struct {
	ID              string
	PatientName     string
	MedicalNumber   string
	Specialty       string
	CreatedAt       time.Time
	AppointmentType string // urgent, regular
	Status          string // pending, completed, cancelled
	Notes           string
}

// Record is a tagged union over the three clinical record shapes.
// Exactly one of the variant pointers is set, matching Kind.
type Record struct {
	Kind         RecordKind
	Admission    *Admission
	Consultation *Consultation
	Appointment  *Appointment
}

func AdmissionRecord(a Admission) Record {
	return Record{Kind: RecordKindAdmission, Admission: &a}
}

func ConsultationRecord(c Consultation) Record {
	return Record{Kind: RecordKindConsultation, Consultation: &c}
}

func AppointmentRecord(a Appointment) Record {
	return Record{Kind: RecordKindAppointment, Appointment: &a}
}

// Anchor returns the temporal anchor of the record: the admission date for
// admissions, the creation time otherwise. ok is false when the record has no
// usable timestamp.
func (r Record) Anchor() (t time.Time, ok bool) {
	switch r.Kind {
	case RecordKindAdmission:
		if r.Admission != nil {
			t = r.Admission.AdmissionDate
		}
	case RecordKindConsultation:
		if r.Consultation != nil {
			t = r.Consultation.CreatedAt
		}
	case RecordKindAppointment:
		if r.Appointment != nil {
			t = r.Appointment.CreatedAt
		}
	}
	return t, !t.IsZero()
}

// Category returns the department or specialty the record is filed under
func (r Record) Category() string {
	switch r.Kind {
	case RecordKindAdmission:
		if r.Admission != nil {
			return r.Admission.Department
		}
	case RecordKindConsultation:
		if r.Consultation != nil {
			return r.Consultation.Specialty
		}
	case RecordKindAppointment:
		if r.Appointment != nil {
			return r.Appointment.Specialty
		}
	}
	return ""
}

// SearchFields returns the free-text search candidates in match order:
// display name, medical record number, assigned clinician. Absent fields are
// returned as empty strings.
func (r Record) SearchFields() [3]string {
	switch r.Kind {
	case RecordKindAdmission:
		if a := r.Admission; a != nil {
			return [3]string{a.Name, a.MRN, a.DoctorName}
		}
	case RecordKindConsultation:
		if c := r.Consultation; c != nil {
			return [3]string{c.PatientName, c.MRN, c.DoctorName}
		}
	case RecordKindAppointment:
		if a := r.Appointment; a != nil {
			return [3]string{a.PatientName, a.MedicalNumber, ""}
		}
	}
	return [3]string{}
}

// Collections holds the already-fetched record collections a report is built from
type Collections struct {
	Admissions    []Admission
	Consultations []Consultation
	Appointments  []Appointment
}

func (c Collections) AdmissionRecords() []Record {
	out := make([]Record, 0, len(c.Admissions))
	for _, a := range c.Admissions {
		out = append(out, AdmissionRecord(a))
	}
	return out
}

func (c Collections) ConsultationRecords() []Record {
	out := make([]Record, 0, len(c.Consultations))
	for _, cons := range c.Consultations {
		out = append(out, ConsultationRecord(cons))
	}
	return out
}

func (c Collections) AppointmentRecords() []Record {
	out := make([]Record, 0, len(c.Appointments))
	for _, a := range c.Appointments {
		out = append(out, AppointmentRecord(a))
	}
	return out
}
