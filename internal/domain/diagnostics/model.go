package diagnostics

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidOrderType = errors.New("invalid order type")
	ErrInvalidStatus    = errors.New("invalid order status")
)

// Order types.
const (
	OrderTypeLab       = "lab"
	OrderTypeRadiology = "radiology"
)

// Order statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var validOrderTypes = map[string]bool{
	OrderTypeLab:       true,
	OrderTypeRadiology: true,
}

var validStatuses = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// Order maps to the lab_order table.
type Order struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OrderID     string    `db:"order_id" json:"order_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	DoctorID    string    `db:"doctor_id" json:"doctor_id"`
	DoctorName  string    `db:"doctor_name" json:"doctor_name"`
	OrderType   string    `db:"order_type" json:"order_type"`
	TestName    string    `db:"test_name" json:"test_name"`
	Status      string    `db:"status" json:"status"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// OrderInput is the payload for placing a diagnostic order.
type OrderInput struct {
	PatientID uuid.UUID `json:"patient_id"`
	OrderType string    `json:"order_type"`
	TestName  string    `json:"test_name"`
	Notes     *string   `json:"notes,omitempty"`
}

// Report maps to the report table. Uploaded files are stored inline as
// base64; reports never exceed attachment scale in this system.
type Report struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ReportID    string     `db:"report_id" json:"report_id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	PatientName string     `db:"patient_name" json:"patient_name"`
	OrderID     *uuid.UUID `db:"order_id" json:"order_id,omitempty"`
	ReportType  string     `db:"report_type" json:"report_type"`
	TestName    string     `db:"test_name" json:"test_name"`
	FileData    *string    `db:"file_data" json:"file_data,omitempty"`
	FileName    *string    `db:"file_name" json:"file_name,omitempty"`
	Findings    *string    `db:"findings" json:"findings,omitempty"`
	ImagingLink *string    `db:"imaging_link" json:"imaging_link,omitempty"`
	UploadedBy  string     `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ReportInput is the payload for filing a report without a file.
type ReportInput struct {
	PatientID   uuid.UUID  `json:"patient_id"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
	ReportType  string     `json:"report_type"`
	TestName    string     `json:"test_name"`
	Findings    *string    `json:"findings,omitempty"`
	ImagingLink *string    `json:"imaging_link,omitempty"`
}

// UploadInput is the payload for filing a report with an attached file.
type UploadInput struct {
	PatientID  uuid.UUID
	OrderID    *uuid.UUID
	ReportType string
	TestName   string
	FileName   string
	Contents   []byte
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	PatientID string
	Status    string
}
