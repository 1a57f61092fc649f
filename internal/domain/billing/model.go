package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("invoice not found")

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
)

// Item is a single billable line on an invoice.
type Item struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice maps to the invoice table. Totals are computed server-side at
// creation and never trusted from the client.
type Invoice struct {
	ID            uuid.UUID `db:"id" json:"id"`
	InvoiceID     string    `db:"invoice_id" json:"invoice_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	Items         []Item    `db:"items" json:"items"`
	Subtotal      float64   `db:"subtotal" json:"subtotal"`
	Tax           float64   `db:"tax" json:"tax"`
	Total         float64   `db:"total" json:"total"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"`
	PaymentMethod *string   `db:"payment_method" json:"payment_method,omitempty"`
	Notes         *string   `db:"notes" json:"notes,omitempty"`
	CreatedBy     string    `db:"created_by" json:"created_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Input is the payload for raising an invoice.
type Input struct {
	PatientID     uuid.UUID `json:"patient_id"`
	Items         []Item    `json:"items"`
	Tax           float64   `json:"tax"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}
