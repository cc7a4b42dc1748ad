package store

// Timestamps are kept as the raw text received from the source system.
// Values that fail to parse are kept as-is and surface as missing dates.

type Admission struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MRN           string `json:"mrn"`
	Department    string `json:"department"`
	AdmissionDate string `json:"admission_date"`
	Diagnosis     string `json:"diagnosis"`
	DoctorName    string `json:"doctor_name"`
	Status        string `json:"status"`
	SafetyType    string `json:"safety_type"`
}

type Consultation struct {
	ID                   string `json:"id"`
	PatientName          string `json:"patient_name"`
	MRN                  string `json:"mrn"`
	Age                  int    `json:"age"`
	Gender               string `json:"gender"`
	RequestingDepartment string `json:"requesting_department"`
	PatientLocation      string `json:"patient_location"`
	Specialty            string `json:"specialty"`
	CreatedAt            string `json:"created_at"`
	Urgency              string `json:"urgency"`
	Reason               string `json:"reason"`
	Status               string `json:"status"`
	DoctorName           string `json:"doctor_name"`
}

type Appointment struct {
	ID              string `json:"id"`
	PatientName     string `json:"patient_name"`
	MedicalNumber   string `json:"medical_number"`
	Specialty       string `json:"specialty"`
	CreatedAt       string `json:"created_at"`
	AppointmentType string `json:"appointment_type"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// RecordSet is the on-disk fixture layout accepted by the importer
type RecordSet struct {
	Admissions    []Admission    `json:"admissions"`
	Consultations []Consultation `json:"consultations"`
	Appointments  []Appointment  `json:"appointments"`
}
