package dashboard

import "github.com/gangosri/his/internal/domain/scheduling"

// Stats is the landing-page summary. The doctor view carries that
// doctor's own appointments for the day; the shared view carries
// hospital-wide counters instead.
type Stats struct {
	TotalPatients     int                       `json:"total_patients"`
	TodayAppointments int                       `json:"today_appointments"`
	PendingOrders     *int                      `json:"pending_orders,omitempty"`
	PendingInvoices   *int                      `json:"pending_invoices,omitempty"`
	Appointments      []*scheduling.Appointment `json:"appointments,omitempty"`
}
