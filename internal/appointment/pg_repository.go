package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientName,
		&a.PatientEmail,
		&a.Date,
		&a.Description,
		&a.Specialty,
		&a.ProfessionalID,
		&a.Status,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	return &a, nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at
		FROM consultas
		ORDER BY data ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) ListByPatientEmail(ctx context.Context, email string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at
		FROM consultas
		WHERE paciente_email = $1
		ORDER BY data ASC
	`, email)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at
		FROM consultas
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) CreatePending(ctx context.Context, a Appointment) (*Appointment, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO consultas (id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pendente', now())
		RETURNING id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at
	`, id, a.PatientName, a.PatientEmail, a.Date, a.Description, a.Specialty, a.ProfessionalID)

	return scanAppointment(row)
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE consultas
		SET status = $2
		WHERE id = $1
		RETURNING id, paciente_nome, paciente_email, data, descricao, especialidade, profissional_id, status, created_at
	`, id, status)

	return scanAppointment(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM consultas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
