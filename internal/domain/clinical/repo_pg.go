package clinical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type encounterRepoPG struct {
	pool *pgxpool.Pool
}

func NewEncounterRepo(pool *pgxpool.Pool) EncounterRepository {
	return &encounterRepoPG{pool: pool}
}

const encCols = `id, encounter_id, patient_id, patient_name, doctor_id, doctor_name,
	appointment_id, chief_complaint, vitals, diagnosis, clinical_notes,
	treatment_plan, follow_up, created_by, created_at`

func scanEncounter(row pgx.Row) (*Encounter, error) {
	var e Encounter
	var vitals []byte
	err := row.Scan(&e.ID, &e.EncounterID, &e.PatientID, &e.PatientName,
		&e.DoctorID, &e.DoctorName, &e.AppointmentID, &e.ChiefComplaint,
		&vitals, &e.Diagnosis, &e.ClinicalNotes, &e.TreatmentPlan,
		&e.FollowUp, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEncounterNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(vitals) > 0 {
		if err := json.Unmarshal(vitals, &e.Vitals); err != nil {
			return nil, fmt.Errorf("unmarshal vitals: %w", err)
		}
	}
	return &e, nil
}

func (r *encounterRepoPG) Create(ctx context.Context, e *Encounter) error {
	e.ID = uuid.New()

	var vitals []byte
	if e.Vitals != nil {
		var err error
		vitals, err = json.Marshal(e.Vitals)
		if err != nil {
			return fmt.Errorf("marshal vitals: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO encounter (
			id, encounter_id, patient_id, patient_name, doctor_id, doctor_name,
			appointment_id, chief_complaint, vitals, diagnosis, clinical_notes,
			treatment_plan, follow_up, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		e.ID, e.EncounterID, e.PatientID, e.PatientName, e.DoctorID, e.DoctorName,
		e.AppointmentID, e.ChiefComplaint, vitals, e.Diagnosis, e.ClinicalNotes,
		e.TreatmentPlan, e.FollowUp, e.CreatedBy,
	)
	return err
}

func (r *encounterRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Encounter, error) {
	return scanEncounter(r.pool.QueryRow(ctx, `SELECT `+encCols+` FROM encounter WHERE id = $1`, id))
}

func (r *encounterRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*Encounter, int, error) {
	where := ""
	args := []interface{}{}
	if patientID != "" {
		where = ` WHERE patient_id = $1`
		args = append(args, patientID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM encounter`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count encounters: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT `+encCols+` FROM encounter%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query encounters: %w", err)
	}
	defer rows.Close()

	var encs []*Encounter
	for rows.Next() {
		e, err := scanEncounter(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan encounter: %w", err)
		}
		encs = append(encs, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate encounters: %w", err)
	}

	return encs, total, nil
}

type prescriptionRepoPG struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepo(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

const rxCols = `id, prescription_id, patient_id, patient_name, doctor_id, doctor_name,
	encounter_id, medications, instructions, created_by, created_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	var meds []byte
	err := row.Scan(&p.ID, &p.PrescriptionID, &p.PatientID, &p.PatientName,
		&p.DoctorID, &p.DoctorName, &p.EncounterID, &meds,
		&p.Instructions, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(meds) > 0 {
		if err := json.Unmarshal(meds, &p.Medications); err != nil {
			return nil, fmt.Errorf("unmarshal medications: %w", err)
		}
	}
	return &p, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()

	meds, err := json.Marshal(p.Medications)
	if err != nil {
		return fmt.Errorf("marshal medications: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO prescription (
			id, prescription_id, patient_id, patient_name, doctor_id, doctor_name,
			encounter_id, medications, instructions, created_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.PrescriptionID, p.PatientID, p.PatientName, p.DoctorID, p.DoctorName,
		p.EncounterID, meds, p.Instructions, p.CreatedBy,
	)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.pool.QueryRow(ctx, `SELECT `+rxCols+` FROM prescription WHERE id = $1`, id))
}

func (r *prescriptionRepoPG) List(ctx context.Context, patientID string, limit, offset int) ([]*Prescription, int, error) {
	where := ""
	args := []interface{}{}
	if patientID != "" {
		where = ` WHERE patient_id = $1`
		args = append(args, patientID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prescription`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prescriptions: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT `+rxCols+` FROM prescription%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var rxs []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan prescription: %w", err)
		}
		rxs = append(rxs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prescriptions: %w", err)
	}

	return rxs, total, nil
}
