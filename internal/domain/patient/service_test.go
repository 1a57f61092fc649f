package patient

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/sequence"
)

type fakeRepo struct {
	byID map[uuid.UUID]*Patient
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*Patient)}
}

func (f *fakeRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := f.byID[p.ID]; !ok {
		return ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRepo) List(_ context.Context, search string, _, _ int) ([]*Patient, int, error) {
	var out []*Patient
	for _, p := range f.byID {
		if search == "" || strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

type fakeAuditRepo struct {
	entries []*audit.Entry
}

func (f *fakeAuditRepo) Append(_ context.Context, e *audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAuditRepo) Search(_ context.Context, _ audit.Filter, _, _ int) ([]*audit.Entry, int, error) {
	return f.entries, len(f.entries), nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeAuditRepo) {
	t.Helper()
	repo := newFakeRepo()
	auditRepo := &fakeAuditRepo{}
	failures := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_failures"})
	trail := audit.NewTrail(auditRepo, zerolog.New(os.Stderr), failures)
	return NewService(repo, sequence.NewMemIssuer(), trail), repo, auditRepo
}

func testActor() *auth.Principal {
	return &auth.Principal{ID: uuid.NewString(), Email: "reception@hospital.test", Role: auth.RoleReceptionist, Active: true}
}

func validInput() Input {
	return Input{
		FullName:    "Jane Doe",
		DateOfBirth: "1985-06-12",
		Gender:      "female",
		Phone:       "+911234567890",
	}
}

func TestCreate_AssignsSequentialBusinessID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, testActor(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, testActor(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if first.PatientID != "PAT000001" {
		t.Errorf("expected PAT000001, got %s", first.PatientID)
	}
	if second.PatientID != "PAT000002" {
		t.Errorf("expected PAT000002, got %s", second.PatientID)
	}
}

func TestCreate_RequiredFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing name", func(in *Input) { in.FullName = "" }},
		{"missing dob", func(in *Input) { in.DateOfBirth = "" }},
		{"missing gender", func(in *Input) { in.Gender = "" }},
		{"missing phone", func(in *Input) { in.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.Create(context.Background(), testActor(), in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreate_RecordsAuditAndCreator(t *testing.T) {
	svc, _, auditRepo := newTestService(t)
	actor := testActor()

	p, err := svc.Create(context.Background(), actor, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.CreatedBy != actor.ID {
		t.Errorf("expected created_by %s, got %s", actor.ID, p.CreatedBy)
	}
	if len(auditRepo.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(auditRepo.entries))
	}
	e := auditRepo.entries[0]
	if e.Action != audit.ActionCreate || e.ResourceType != "patient" {
		t.Errorf("unexpected audit entry: %+v", e)
	}
}

func TestGet_AuditsChartAccess(t *testing.T) {
	svc, _, auditRepo := newTestService(t)
	p, err := svc.Create(context.Background(), testActor(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	viewer := testActor()
	if _, err := svc.Get(context.Background(), viewer, p.ID); err != nil {
		t.Fatalf("get: %v", err)
	}

	last := auditRepo.entries[len(auditRepo.entries)-1]
	if last.Action != audit.ActionView || last.ResourceID != p.ID.String() {
		t.Errorf("expected VIEW audit for %s, got %+v", p.ID, last)
	}
	if last.ActorID != viewer.ID {
		t.Errorf("expected viewer attribution, got %s", last.ActorID)
	}
}

func TestGet_Unknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.Get(context.Background(), testActor(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_PreservesBusinessID(t *testing.T) {
	svc, _, auditRepo := newTestService(t)
	p, err := svc.Create(context.Background(), testActor(), validInput())
	if err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.FullName = "Jane Smith"
	updated, err := svc.Update(context.Background(), testActor(), p.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.FullName != "Jane Smith" {
		t.Errorf("expected updated name, got %s", updated.FullName)
	}
	if updated.PatientID != p.PatientID {
		t.Errorf("business id must survive updates: %s != %s", updated.PatientID, p.PatientID)
	}

	last := auditRepo.entries[len(auditRepo.entries)-1]
	if last.Action != audit.ActionUpdate {
		t.Errorf("expected UPDATE audit, got %s", last.Action)
	}
}
