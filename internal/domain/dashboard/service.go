package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gangosri/his/internal/domain/scheduling"
	"github.com/gangosri/his/internal/platform/auth"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats builds the summary for the caller. Doctors get their own
// schedule for the day; everyone else gets the hospital-wide counters.
func (s *Service) Stats(ctx context.Context, actor *auth.Principal) (*Stats, error) {
	today := s.now().Format("2006-01-02")

	totalPatients, err := s.repo.TotalPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	if actor != nil && actor.Role == auth.RoleDoctor {
		appointments, err := s.repo.DoctorTodayAppointments(ctx, actor.ID, today)
		if err != nil {
			return nil, fmt.Errorf("doctor appointments: %w", err)
		}
		if appointments == nil {
			appointments = []*scheduling.Appointment{}
		}
		return &Stats{
			TotalPatients:     totalPatients,
			TodayAppointments: len(appointments),
			Appointments:      appointments,
		}, nil
	}

	todayAppointments, err := s.repo.TodayAppointments(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	pendingOrders, err := s.repo.PendingOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	pendingInvoices, err := s.repo.PendingInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("count invoices: %w", err)
	}

	return &Stats{
		TotalPatients:     totalPatients,
		TodayAppointments: todayAppointments,
		PendingOrders:     &pendingOrders,
		PendingInvoices:   &pendingInvoices,
	}, nil
}
