package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gangosri/his/internal/domain/scheduling"
	"github.com/gangosri/his/internal/platform/auth"
)

type fakeRepo struct {
	patients     int
	appointments int
	orders       int
	invoices     int
	byDoctor     map[string][]*scheduling.Appointment

	gotDate string
}

func (f *fakeRepo) TotalPatients(context.Context) (int, error) { return f.patients, nil }

func (f *fakeRepo) TodayAppointments(_ context.Context, date string) (int, error) {
	f.gotDate = date
	return f.appointments, nil
}

func (f *fakeRepo) PendingOrders(context.Context) (int, error)   { return f.orders, nil }
func (f *fakeRepo) PendingInvoices(context.Context) (int, error) { return f.invoices, nil }

func (f *fakeRepo) DoctorTodayAppointments(_ context.Context, doctorID, date string) ([]*scheduling.Appointment, error) {
	f.gotDate = date
	return f.byDoctor[doctorID], nil
}

func fixedService(repo *fakeRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestStats_HospitalWide(t *testing.T) {
	repo := &fakeRepo{patients: 42, appointments: 7, orders: 3, invoices: 5}
	svc := fixedService(repo)

	stats, err := svc.Stats(context.Background(), &auth.Principal{ID: uuid.NewString(), Role: auth.RoleAdmin, Active: true})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalPatients != 42 {
		t.Errorf("expected 42 patients, got %d", stats.TotalPatients)
	}
	if stats.TodayAppointments != 7 {
		t.Errorf("expected 7 appointments, got %d", stats.TodayAppointments)
	}
	if stats.PendingOrders == nil || *stats.PendingOrders != 3 {
		t.Errorf("expected 3 pending orders, got %v", stats.PendingOrders)
	}
	if stats.PendingInvoices == nil || *stats.PendingInvoices != 5 {
		t.Errorf("expected 5 pending invoices, got %v", stats.PendingInvoices)
	}
	if stats.Appointments != nil {
		t.Error("hospital-wide view should not carry an appointment list")
	}
	if repo.gotDate != "2025-03-14" {
		t.Errorf("expected today 2025-03-14, got %s", repo.gotDate)
	}
}

func TestStats_DoctorView(t *testing.T) {
	doctorID := uuid.NewString()
	repo := &fakeRepo{
		patients: 42,
		byDoctor: map[string][]*scheduling.Appointment{
			doctorID: {
				{AppointmentID: "APT000001", Status: scheduling.StatusScheduled},
				{AppointmentID: "APT000002", Status: scheduling.StatusScheduled},
			},
		},
	}
	svc := fixedService(repo)

	stats, err := svc.Stats(context.Background(), &auth.Principal{ID: doctorID, Role: auth.RoleDoctor, Active: true})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TodayAppointments != 2 {
		t.Errorf("expected 2 appointments, got %d", stats.TodayAppointments)
	}
	if len(stats.Appointments) != 2 {
		t.Fatalf("expected 2 appointments listed, got %d", len(stats.Appointments))
	}
	if stats.PendingOrders != nil || stats.PendingInvoices != nil {
		t.Error("doctor view should not carry hospital-wide counters")
	}
}

func TestStats_DoctorWithEmptySchedule(t *testing.T) {
	repo := &fakeRepo{patients: 1, byDoctor: map[string][]*scheduling.Appointment{}}
	svc := fixedService(repo)

	stats, err := svc.Stats(context.Background(), &auth.Principal{ID: uuid.NewString(), Role: auth.RoleDoctor, Active: true})
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Appointments == nil {
		t.Error("expected empty list, not nil")
	}
	if stats.TodayAppointments != 0 {
		t.Errorf("expected 0 appointments, got %d", stats.TodayAppointments)
	}
}
