package diagnostics

import (
	"context"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*Order, int, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
}

type ReportRepository interface {
	Create(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)
	List(ctx context.Context, patientID string, limit, offset int) ([]*Report, int, error)
}
