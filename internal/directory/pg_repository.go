package directory

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

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	var createdBy *uuid.UUID

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Specialties,
		&p.CreatedAt,
		&createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	p.CreatedBy = createdBy
	return &p, nil
}

func collectProfessionals(rows pgx.Rows) ([]Professional, error) {
	defer rows.Close()

	var result []Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nome, email, telefone, especialidades, created_at, created_by
		FROM profissionais
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return collectProfessionals(rows)
}

func (r *PgRepository) ListBySpecialty(ctx context.Context, specialty string) ([]Professional, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, nome, email, telefone, especialidades, created_at, created_by
		FROM profissionais
		WHERE $1 = ANY(especialidades)
		ORDER BY created_at DESC
	`, specialty)
	if err != nil {
		return nil, err
	}
	return collectProfessionals(rows)
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, nome, email, telefone, especialidades, created_at, created_by
		FROM profissionais
		WHERE id = $1
	`, id)
	return scanProfessional(row)
}

func (r *PgRepository) Upsert(ctx context.Context, p Professional) (*Professional, error) {
	if p.ID == uuid.Nil {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO profissionais (id, nome, email, telefone, especialidades, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, now(), $6)
			RETURNING id, nome, email, telefone, especialidades, created_at, created_by
		`, uuid.New(), p.Name, p.Email, p.Phone, p.Specialties, p.CreatedBy)
		return scanProfessional(row)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE profissionais
		SET nome = $2,
		    email = $3,
		    telefone = $4,
		    especialidades = $5
		WHERE id = $1
		RETURNING id, nome, email, telefone, especialidades, created_at, created_by
	`, p.ID, p.Name, p.Email, p.Phone, p.Specialties)
	return scanProfessional(row)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profissionais WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

// UpsertSpecialty relies on the unique constraint on nome. The no-op
// update makes RETURNING yield the existing row on conflict, so the
// first write wins.
func (r *PgRepository) UpsertSpecialty(ctx context.Context, name string) (*Specialty, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO especialidades (id, nome, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (nome) DO UPDATE SET nome = EXCLUDED.nome
		RETURNING id, nome, created_at
	`, uuid.New(), name)

	var s Specialty
	if err := row.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PgRepository) UpsertAssociation(ctx context.Context, professionalID, specialtyID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profissionais_especialidades (profissional_id, especialidade_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, professionalID, specialtyID)
	return err
}
