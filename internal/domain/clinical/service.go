package clinical

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/sequence"
)

// PatientDirectory resolves patient ids to display names.
type PatientDirectory interface {
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

// AppointmentCompleter marks a booked appointment finished once its visit
// has been recorded.
type AppointmentCompleter interface {
	Complete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	encounters   EncounterRepository
	rx           PrescriptionRepository
	patients     PatientDirectory
	appointments AppointmentCompleter
	seq          sequence.Issuer
	trail        *audit.Trail
}

func NewService(encounters EncounterRepository, rx PrescriptionRepository, patients PatientDirectory,
	appointments AppointmentCompleter, seq sequence.Issuer, trail *audit.Trail) *Service {
	return &Service{
		encounters:   encounters,
		rx:           rx,
		patients:     patients,
		appointments: appointments,
		seq:          seq,
		trail:        trail,
	}
}

// RecordEncounter stores a visit. The caller is the attending doctor; a
// linked appointment is marked completed as a side effect.
func (s *Service) RecordEncounter(ctx context.Context, actor *auth.Principal, in EncounterInput) (*Encounter, error) {
	if in.ChiefComplaint == "" {
		return nil, fmt.Errorf("chief_complaint is required")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Encounters)
	if err != nil {
		return nil, err
	}

	e := &Encounter{
		EncounterID:    businessID,
		PatientID:      in.PatientID,
		PatientName:    patientName,
		DoctorID:       actor.ID,
		DoctorName:     actor.FullName,
		AppointmentID:  in.AppointmentID,
		ChiefComplaint: in.ChiefComplaint,
		Vitals:         in.Vitals,
		Diagnosis:      in.Diagnosis,
		ClinicalNotes:  in.ClinicalNotes,
		TreatmentPlan:  in.TreatmentPlan,
		FollowUp:       in.FollowUp,
		CreatedBy:      actor.ID,
	}
	if err := s.encounters.Create(ctx, e); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "encounter", e.ID.String(), nil)

	if in.AppointmentID != nil {
		if err := s.appointments.Complete(ctx, *in.AppointmentID); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (s *Service) GetEncounter(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Encounter, error) {
	e, err := s.encounters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "encounter", e.ID.String(), nil)
	return e, nil
}

func (s *Service) ListEncounters(ctx context.Context, patientID string, limit, offset int) ([]*Encounter, int, error) {
	return s.encounters.List(ctx, patientID, limit, offset)
}

// IssuePrescription stores a prescription written by the caller.
func (s *Service) IssuePrescription(ctx context.Context, actor *auth.Principal, in PrescriptionInput) (*Prescription, error) {
	if len(in.Medications) == 0 {
		return nil, fmt.Errorf("medications are required")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Prescriptions)
	if err != nil {
		return nil, err
	}

	p := &Prescription{
		PrescriptionID: businessID,
		PatientID:      in.PatientID,
		PatientName:    patientName,
		DoctorID:       actor.ID,
		DoctorName:     actor.FullName,
		EncounterID:    in.EncounterID,
		Medications:    in.Medications,
		Instructions:   in.Instructions,
		CreatedBy:      actor.ID,
	}
	if err := s.rx.Create(ctx, p); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "prescription", p.ID.String(), nil)
	return p, nil
}

func (s *Service) GetPrescription(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Prescription, error) {
	p, err := s.rx.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "prescription", p.ID.String(), nil)
	return p, nil
}

func (s *Service) ListPrescriptions(ctx context.Context, patientID string, limit, offset int) ([]*Prescription, int, error) {
	return s.rx.List(ctx, patientID, limit, offset)
}
