package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Appointment, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}
