package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrProfessionalNotFound = errors.New("professional not found")

// ProfessionalRepository contains all DB interactions for the
// professional and specialty tables.
type ProfessionalRepository interface {
	List(ctx context.Context) ([]Professional, error)
	ListBySpecialty(ctx context.Context, specialty string) ([]Professional, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Professional, error)

	// Upsert inserts when p.ID is nil and updates the full row
	// otherwise.
	Upsert(ctx context.Context, p Professional) (*Professional, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpsertSpecialty is idempotent on the name collision: the first
	// write wins and later calls return the existing row.
	UpsertSpecialty(ctx context.Context, name string) (*Specialty, error)
	UpsertAssociation(ctx context.Context, professionalID, specialtyID uuid.UUID) error
}
