package clinical

import (
	"context"

	"github.com/google/uuid"
)

type EncounterRepository interface {
	Create(ctx context.Context, e *Encounter) error
	GetByID(ctx context.Context, id uuid.UUID) (*Encounter, error)
	List(ctx context.Context, patientID string, limit, offset int) ([]*Encounter, int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	List(ctx context.Context, patientID string, limit, offset int) ([]*Prescription, int, error)
}
