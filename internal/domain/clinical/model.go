package clinical

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEncounterNotFound    = errors.New("encounter not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
)

// Encounter maps to the encounter table. The attending doctor is always
// the caller who records the visit.
type Encounter struct {
	ID             uuid.UUID              `db:"id" json:"id"`
	EncounterID    string                 `db:"encounter_id" json:"encounter_id"`
	PatientID      uuid.UUID              `db:"patient_id" json:"patient_id"`
	PatientName    string                 `db:"patient_name" json:"patient_name"`
	DoctorID       string                 `db:"doctor_id" json:"doctor_id"`
	DoctorName     string                 `db:"doctor_name" json:"doctor_name"`
	AppointmentID  *uuid.UUID             `db:"appointment_id" json:"appointment_id,omitempty"`
	ChiefComplaint string                 `db:"chief_complaint" json:"chief_complaint"`
	Vitals         map[string]interface{} `db:"vitals" json:"vitals,omitempty"`
	Diagnosis      *string                `db:"diagnosis" json:"diagnosis,omitempty"`
	ClinicalNotes  *string                `db:"clinical_notes" json:"clinical_notes,omitempty"`
	TreatmentPlan  *string                `db:"treatment_plan" json:"treatment_plan,omitempty"`
	FollowUp       *string                `db:"follow_up" json:"follow_up,omitempty"`
	CreatedBy      string                 `db:"created_by" json:"created_by"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
}

// EncounterInput is the payload for recording a visit.
type EncounterInput struct {
	PatientID      uuid.UUID              `json:"patient_id"`
	AppointmentID  *uuid.UUID             `json:"appointment_id,omitempty"`
	ChiefComplaint string                 `json:"chief_complaint"`
	Vitals         map[string]interface{} `json:"vitals,omitempty"`
	Diagnosis      *string                `json:"diagnosis,omitempty"`
	ClinicalNotes  *string                `json:"clinical_notes,omitempty"`
	TreatmentPlan  *string                `json:"treatment_plan,omitempty"`
	FollowUp       *string                `json:"follow_up,omitempty"`
}

// Medication is a single line on a prescription.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// Prescription maps to the prescription table.
type Prescription struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	PrescriptionID string       `db:"prescription_id" json:"prescription_id"`
	PatientID      uuid.UUID    `db:"patient_id" json:"patient_id"`
	PatientName    string       `db:"patient_name" json:"patient_name"`
	DoctorID       string       `db:"doctor_id" json:"doctor_id"`
	DoctorName     string       `db:"doctor_name" json:"doctor_name"`
	EncounterID    *uuid.UUID   `db:"encounter_id" json:"encounter_id,omitempty"`
	Medications    []Medication `db:"medications" json:"medications"`
	Instructions   *string      `db:"instructions" json:"instructions,omitempty"`
	CreatedBy      string       `db:"created_by" json:"created_by"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}

// PrescriptionInput is the payload for issuing a prescription.
type PrescriptionInput struct {
	PatientID    uuid.UUID    `json:"patient_id"`
	EncounterID  *uuid.UUID   `json:"encounter_id,omitempty"`
	Medications  []Medication `json:"medications"`
	Instructions *string      `json:"instructions,omitempty"`
}
