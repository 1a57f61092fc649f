package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/sequence"
)

type Service struct {
	repo  Repository
	seq   sequence.Issuer
	trail *audit.Trail
}

func NewService(repo Repository, seq sequence.Issuer, trail *audit.Trail) *Service {
	return &Service{repo: repo, seq: seq, trail: trail}
}

func (s *Service) Create(ctx context.Context, actor *auth.Principal, in Input) (*Patient, error) {
	if in.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if in.DateOfBirth == "" {
		return nil, fmt.Errorf("date_of_birth is required")
	}
	if in.Gender == "" {
		return nil, fmt.Errorf("gender is required")
	}
	if in.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}

	businessID, err := s.seq.Next(ctx, sequence.Patients)
	if err != nil {
		return nil, err
	}

	p := &Patient{PatientID: businessID, CreatedBy: actor.ID}
	in.apply(p)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "patient", p.ID.String(), nil)
	return p, nil
}

// Get returns a patient record and records the chart access.
func (s *Service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "patient", p.ID.String(), nil)
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Principal, id uuid.UUID, in Input) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionUpdate, "patient", p.ID.String(), nil)
	return p, nil
}

func (s *Service) List(ctx context.Context, search string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, search, limit, offset)
}

// PatientName resolves a patient row key to the display name. Other
// domains use it to denormalize names onto their records.
func (s *Service) PatientName(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.FullName, nil
}
