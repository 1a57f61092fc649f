package scheduling

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

// DoctorDirectory resolves doctor ids to display names. Ids that do not
// belong to a doctor account must not resolve.
type DoctorDirectory interface {
	DoctorName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	doctors  DoctorDirectory
	seq      sequence.Issuer
	trail    *audit.Trail
}

func NewService(repo Repository, patients PatientDirectory, doctors DoctorDirectory, seq sequence.Issuer, trail *audit.Trail) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors, seq: seq, trail: trail}
}

// Book creates a scheduled appointment, denormalizing patient and doctor
// names onto the row.
func (s *Service) Book(ctx context.Context, actor *auth.Principal, in Input) (*Appointment, error) {
	if in.Date == "" {
		return nil, fmt.Errorf("appointment_date is required")
	}
	if in.Time == "" {
		return nil, fmt.Errorf("appointment_time is required")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	doctorName, err := s.doctors.DoctorName(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Appointments)
	if err != nil {
		return nil, err
	}

	a := &Appointment{
		AppointmentID: businessID,
		PatientID:     in.PatientID,
		PatientName:   patientName,
		DoctorID:      in.DoctorID,
		DoctorName:    doctorName,
		Date:          in.Date,
		Time:          in.Time,
		Status:        StatusScheduled,
		Reason:        in.Reason,
		Notes:         in.Notes,
		CreatedBy:     actor.ID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "appointment", a.ID.String(), nil)
	return a, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "appointment", a.ID.String(), nil)
	return a, nil
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

func (s *Service) SetStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}

	s.trail.Record(ctx, actor, audit.ActionUpdateStatus, "appointment", id.String(),
		map[string]interface{}{"status": status})
	return nil
}

// Complete marks an appointment finished after its encounter was recorded.
// A missing appointment is not an error here; the encounter stands on its
// own.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.SetStatus(ctx, id, StatusCompleted)
	if err == ErrNotFound {
		return nil
	}
	return err
}
