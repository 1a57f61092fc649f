package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gangosri/his/internal/domain/scheduling"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *repoPG) TotalPatients(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM patient`)
}

func (r *repoPG) TodayAppointments(ctx context.Context, date string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM appointment WHERE appointment_date = $1`, date)
}

func (r *repoPG) PendingOrders(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM lab_order WHERE status = $1`, "pending")
}

func (r *repoPG) PendingInvoices(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM invoice WHERE payment_status = $1`, "pending")
}

func (r *repoPG) DoctorTodayAppointments(ctx context.Context, doctorID, date string) ([]*scheduling.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, patient_id, patient_name, doctor_id, doctor_name,
			appointment_date, appointment_time, status, reason, notes, created_by, created_at
		FROM appointment
		WHERE doctor_id = $1 AND appointment_date = $2
		ORDER BY appointment_time`, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("query doctor appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*scheduling.Appointment
	for rows.Next() {
		var a scheduling.Appointment
		if err := rows.Scan(&a.ID, &a.AppointmentID, &a.PatientID, &a.PatientName,
			&a.DoctorID, &a.DoctorName, &a.Date, &a.Time, &a.Status,
			&a.Reason, &a.Notes, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appointments = append(appointments, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}
