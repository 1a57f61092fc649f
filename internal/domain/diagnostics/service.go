package diagnostics

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/sequence"
)

// PatientDirectory resolves patient ids to display names.
type PatientDirectory interface {
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	orders   OrderRepository
	reports  ReportRepository
	patients PatientDirectory
	seq      sequence.Issuer
	trail    *audit.Trail
}

func NewService(orders OrderRepository, reports ReportRepository, patients PatientDirectory,
	seq sequence.Issuer, trail *audit.Trail) *Service {
	return &Service{orders: orders, reports: reports, patients: patients, seq: seq, trail: trail}
}

// PlaceOrder creates a pending diagnostic order attributed to the caller.
func (s *Service) PlaceOrder(ctx context.Context, actor *auth.Principal, in OrderInput) (*Order, error) {
	if !validOrderTypes[in.OrderType] {
		return nil, ErrInvalidOrderType
	}
	if in.TestName == "" {
		return nil, fmt.Errorf("test_name is required")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Orders)
	if err != nil {
		return nil, err
	}

	o := &Order{
		OrderID:     businessID,
		PatientID:   in.PatientID,
		PatientName: patientName,
		DoctorID:    actor.ID,
		DoctorName:  actor.FullName,
		OrderType:   in.OrderType,
		TestName:    in.TestName,
		Status:      StatusPending,
		Notes:       in.Notes,
		CreatedBy:   actor.ID,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "order", o.ID.String(), nil)
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "order", o.ID.String(), nil)
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, filter OrderFilter, limit, offset int) ([]*Order, int, error) {
	return s.orders.List(ctx, filter, limit, offset)
}

func (s *Service) SetOrderStatus(ctx context.Context, actor *auth.Principal, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return err
	}

	s.trail.Record(ctx, actor, audit.ActionUpdateStatus, "order", id.String(),
		map[string]interface{}{"status": status})
	return nil
}

// FileReport stores a report without an attachment. A linked order is
// marked completed.
func (s *Service) FileReport(ctx context.Context, actor *auth.Principal, in ReportInput) (*Report, error) {
	if in.ReportType == "" {
		return nil, fmt.Errorf("report_type is required")
	}
	if in.TestName == "" {
		return nil, fmt.Errorf("test_name is required")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Reports)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		ReportID:    businessID,
		PatientID:   in.PatientID,
		PatientName: patientName,
		OrderID:     in.OrderID,
		ReportType:  in.ReportType,
		TestName:    in.TestName,
		Findings:    in.Findings,
		ImagingLink: in.ImagingLink,
		UploadedBy:  actor.ID,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "report", rep.ID.String(), nil)

	if err := s.completeLinkedOrder(ctx, in.OrderID); err != nil {
		return nil, err
	}
	return rep, nil
}

// UploadReport stores a report with its file inline as base64.
func (s *Service) UploadReport(ctx context.Context, actor *auth.Principal, in UploadInput) (*Report, error) {
	if in.ReportType == "" || in.TestName == "" {
		return nil, fmt.Errorf("report_type and test_name are required")
	}
	if len(in.Contents) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Reports)
	if err != nil {
		return nil, err
	}

	fileData := base64.StdEncoding.EncodeToString(in.Contents)
	rep := &Report{
		ReportID:    businessID,
		PatientID:   in.PatientID,
		PatientName: patientName,
		OrderID:     in.OrderID,
		ReportType:  in.ReportType,
		TestName:    in.TestName,
		FileData:    &fileData,
		FileName:    &in.FileName,
		UploadedBy:  actor.ID,
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionUpload, "report", rep.ID.String(),
		map[string]interface{}{"file_name": in.FileName})

	if err := s.completeLinkedOrder(ctx, in.OrderID); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *Service) ListReports(ctx context.Context, patientID string, limit, offset int) ([]*Report, int, error) {
	return s.reports.List(ctx, patientID, limit, offset)
}

func (s *Service) completeLinkedOrder(ctx context.Context, orderID *uuid.UUID) error {
	if orderID == nil {
		return nil
	}
	err := s.orders.SetStatus(ctx, *orderID, StatusCompleted)
	if err == ErrOrderNotFound {
		// The report stands even if its order is gone.
		return nil
	}
	return err
}
