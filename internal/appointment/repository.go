package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// Repository contains all DB interactions needed by the service.
// Listings are always ordered by scheduled date ascending.
type Repository interface {
	List(ctx context.Context) ([]Appointment, error)
	ListByPatientEmail(ctx context.Context, email string) ([]Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	CreatePending(ctx context.Context, a Appointment) (*Appointment, error)

	// UpdateStatus is unconditional: it does not check the prior
	// status, so re-approving an approved row succeeds silently.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
