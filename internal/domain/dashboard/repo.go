package dashboard

import (
	"context"

	"github.com/gangosri/his/internal/domain/scheduling"
)

// Repository aggregates counters across the clinical tables.
type Repository interface {
	TotalPatients(ctx context.Context) (int, error)
	TodayAppointments(ctx context.Context, date string) (int, error)
	PendingOrders(ctx context.Context) (int, error)
	PendingInvoices(ctx context.Context) (int, error)
	DoctorTodayAppointments(ctx context.Context, doctorID, date string) ([]*scheduling.Appointment, error)
}
