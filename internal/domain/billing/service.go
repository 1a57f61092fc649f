package billing

import (
	"context"
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
	repo     Repository
	patients PatientDirectory
	seq      sequence.Issuer
	trail    *audit.Trail
}

func NewService(repo Repository, patients PatientDirectory, seq sequence.Issuer, trail *audit.Trail) *Service {
	return &Service{repo: repo, patients: patients, seq: seq, trail: trail}
}

// Raise creates an invoice. Subtotal and total are computed from the line
// items; an invoice raised with a payment method is considered settled on
// the spot, otherwise it starts pending.
func (s *Service) Raise(ctx context.Context, actor *auth.Principal, in Input) (*Invoice, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("items are required")
	}
	if in.Tax < 0 {
		return nil, fmt.Errorf("tax must not be negative")
	}

	patientName, err := s.patients.PatientName(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	businessID, err := s.seq.Next(ctx, sequence.Invoices)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range in.Items {
		subtotal += item.Amount
	}

	status := PaymentPending
	if in.PaymentMethod != nil && *in.PaymentMethod != "" {
		status = PaymentPaid
	}

	inv := &Invoice{
		InvoiceID:     businessID,
		PatientID:     in.PatientID,
		PatientName:   patientName,
		Items:         in.Items,
		Subtotal:      subtotal,
		Tax:           in.Tax,
		Total:         subtotal + in.Tax,
		PaymentStatus: status,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedBy:     actor.ID,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.trail.Record(ctx, actor, audit.ActionCreate, "invoice", inv.ID.String(), nil)
	return inv, nil
}

func (s *Service) Get(ctx context.Context, actor *auth.Principal, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.trail.Record(ctx, actor, audit.ActionView, "invoice", inv.ID.String(), nil)
	return inv, nil
}

func (s *Service) List(ctx context.Context, patientID string, limit, offset int) ([]*Invoice, int, error) {
	return s.repo.List(ctx, patientID, limit, offset)
}
