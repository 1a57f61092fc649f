package clinical

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/gangosri/his/internal/domain/audit"
	"github.com/gangosri/his/internal/domain/patient"
	"github.com/gangosri/his/internal/platform/auth"
	"github.com/gangosri/his/internal/platform/sequence"
)

type fakeEncounterRepo struct {
	byID map[uuid.UUID]*Encounter
}

func (f *fakeEncounterRepo) Create(_ context.Context, e *Encounter) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEncounterRepo) GetByID(_ context.Context, id uuid.UUID) (*Encounter, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, ErrEncounterNotFound
	}
	return e, nil
}

func (f *fakeEncounterRepo) List(_ context.Context, _ string, _, _ int) ([]*Encounter, int, error) {
	var out []*Encounter
	for _, e := range f.byID {
		out = append(out, e)
	}
	return out, len(out), nil
}

type fakeRxRepo struct {
	byID map[uuid.UUID]*Prescription
}

func (f *fakeRxRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeRxRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrPrescriptionNotFound
	}
	return p, nil
}

func (f *fakeRxRepo) List(_ context.Context, _ string, _, _ int) ([]*Prescription, int, error) {
	var out []*Prescription
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, len(out), nil
}

type fakePatients struct {
	names map[uuid.UUID]string
}

func (f *fakePatients) PatientName(_ context.Context, id uuid.UUID) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", patient.ErrNotFound
	}
	return name, nil
}

type fakeCompleter struct {
	completed []uuid.UUID
}

func (f *fakeCompleter) Complete(_ context.Context, id uuid.UUID) error {
	f.completed = append(f.completed, id)
	return nil
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

type testEnv struct {
	svc       *Service
	completer *fakeCompleter
	auditRepo *fakeAuditRepo
	patientID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	patientID := uuid.New()
	completer := &fakeCompleter{}
	auditRepo := &fakeAuditRepo{}
	failures := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_failures"})
	trail := audit.NewTrail(auditRepo, zerolog.New(os.Stderr), failures)
	svc := NewService(
		&fakeEncounterRepo{byID: make(map[uuid.UUID]*Encounter)},
		&fakeRxRepo{byID: make(map[uuid.UUID]*Prescription)},
		&fakePatients{names: map[uuid.UUID]string{patientID: "Jane Doe"}},
		completer,
		sequence.NewMemIssuer(),
		trail,
	)
	return &testEnv{svc: svc, completer: completer, auditRepo: auditRepo, patientID: patientID}
}

func doctorActor() *auth.Principal {
	return &auth.Principal{ID: uuid.NewString(), Email: "dr@hospital.test", FullName: "Dr. Gupta", Role: auth.RoleDoctor, Active: true}
}

func TestRecordEncounter_DoctorIsCaller(t *testing.T) {
	env := newTestEnv(t)
	actor := doctorActor()

	e, err := env.svc.RecordEncounter(context.Background(), actor, EncounterInput{
		PatientID:      env.patientID,
		ChiefComplaint: "chest pain",
	})
	if err != nil {
		t.Fatalf("record encounter: %v", err)
	}

	if e.EncounterID != "ENC000001" {
		t.Errorf("expected ENC000001, got %s", e.EncounterID)
	}
	if e.DoctorID != actor.ID || e.DoctorName != "Dr. Gupta" {
		t.Errorf("doctor identity must come from the caller: %+v", e)
	}
	if e.PatientName != "Jane Doe" {
		t.Errorf("patient name not denormalized: %s", e.PatientName)
	}
}

func TestRecordEncounter_CompletesLinkedAppointment(t *testing.T) {
	env := newTestEnv(t)
	apptID := uuid.New()

	_, err := env.svc.RecordEncounter(context.Background(), doctorActor(), EncounterInput{
		PatientID:      env.patientID,
		AppointmentID:  &apptID,
		ChiefComplaint: "follow-up",
	})
	if err != nil {
		t.Fatalf("record encounter: %v", err)
	}

	if len(env.completer.completed) != 1 || env.completer.completed[0] != apptID {
		t.Errorf("linked appointment not completed: %v", env.completer.completed)
	}
}

func TestRecordEncounter_NoAppointmentNoCompletion(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RecordEncounter(context.Background(), doctorActor(), EncounterInput{
		PatientID:      env.patientID,
		ChiefComplaint: "walk-in",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(env.completer.completed) != 0 {
		t.Errorf("no appointment should have been completed, got %v", env.completer.completed)
	}
}

func TestRecordEncounter_UnknownPatient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RecordEncounter(context.Background(), doctorActor(), EncounterInput{
		PatientID:      uuid.New(),
		ChiefComplaint: "chest pain",
	})
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected patient.ErrNotFound, got %v", err)
	}
}

func TestRecordEncounter_RequiresChiefComplaint(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.RecordEncounter(context.Background(), doctorActor(), EncounterInput{
		PatientID: env.patientID,
	})
	if err == nil {
		t.Error("expected validation error for missing chief_complaint")
	}
}

func TestIssuePrescription(t *testing.T) {
	env := newTestEnv(t)
	actor := doctorActor()

	p, err := env.svc.IssuePrescription(context.Background(), actor, PrescriptionInput{
		PatientID: env.patientID,
		Medications: []Medication{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days"},
		},
	})
	if err != nil {
		t.Fatalf("issue prescription: %v", err)
	}

	if p.PrescriptionID != "RX000001" {
		t.Errorf("expected RX000001, got %s", p.PrescriptionID)
	}
	if p.DoctorID != actor.ID {
		t.Errorf("prescriber must be the caller")
	}

	last := env.auditRepo.entries[len(env.auditRepo.entries)-1]
	if last.Action != audit.ActionCreate || last.ResourceType != "prescription" {
		t.Errorf("unexpected audit entry: %+v", last)
	}
}

func TestIssuePrescription_RequiresMedications(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.IssuePrescription(context.Background(), doctorActor(), PrescriptionInput{
		PatientID: env.patientID,
	})
	if err == nil {
		t.Error("expected validation error for empty medications")
	}
}

func TestGetEncounter_AuditsView(t *testing.T) {
	env := newTestEnv(t)
	e, err := env.svc.RecordEncounter(context.Background(), doctorActor(), EncounterInput{
		PatientID:      env.patientID,
		ChiefComplaint: "chest pain",
	})
	if err != nil {
		t.Fatal(err)
	}

	viewer := doctorActor()
	if _, err := env.svc.GetEncounter(context.Background(), viewer, e.ID); err != nil {
		t.Fatalf("get encounter: %v", err)
	}

	last := env.auditRepo.entries[len(env.auditRepo.entries)-1]
	if last.Action != audit.ActionView || last.ResourceType != "encounter" {
		t.Errorf("expected VIEW audit, got %+v", last)
	}
}
