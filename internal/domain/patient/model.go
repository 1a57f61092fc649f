package patient

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

// Patient maps to the patient table. PatientID is the human-facing
// business identifier (PAT000001); ID is the row key.
type Patient struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        string    `db:"patient_id" json:"patient_id"`
	FullName         string    `db:"full_name" json:"full_name"`
	DateOfBirth      string    `db:"date_of_birth" json:"date_of_birth"`
	Gender           string    `db:"gender" json:"gender"`
	Phone            string    `db:"phone" json:"phone"`
	Email            *string   `db:"email" json:"email,omitempty"`
	Address          *string   `db:"address" json:"address,omitempty"`
	BloodGroup       *string   `db:"blood_group" json:"blood_group,omitempty"`
	EmergencyContact *string   `db:"emergency_contact" json:"emergency_contact,omitempty"`
	InsuranceInfo    *string   `db:"insurance_info" json:"insurance_info,omitempty"`
	MedicalHistory   *string   `db:"medical_history" json:"medical_history,omitempty"`
	Allergies        *string   `db:"allergies" json:"allergies,omitempty"`
	CreatedBy        string    `db:"created_by" json:"created_by"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Input is the create/update payload for a patient record.
type Input struct {
	FullName         string  `json:"full_name"`
	DateOfBirth      string  `json:"date_of_birth"`
	Gender           string  `json:"gender"`
	Phone            string  `json:"phone"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	BloodGroup       *string `json:"blood_group,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	InsuranceInfo    *string `json:"insurance_info,omitempty"`
	MedicalHistory   *string `json:"medical_history,omitempty"`
	Allergies        *string `json:"allergies,omitempty"`
}

func (in Input) apply(p *Patient) {
	p.FullName = in.FullName
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.Phone = in.Phone
	p.Email = in.Email
	p.Address = in.Address
	p.BloodGroup = in.BloodGroup
	p.EmergencyContact = in.EmergencyContact
	p.InsuranceInfo = in.InsuranceInfo
	p.MedicalHistory = in.MedicalHistory
	p.Allergies = in.Allergies
}
