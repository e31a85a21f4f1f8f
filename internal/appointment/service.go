package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrMissingFields             = errors.New("missing required fields")
	ErrNoProfessionalForSpecialty = errors.New("no professional available for this specialty")
	ErrUnknownAction             = errors.New("unknown appointment action")
)

// ProfessionalFinder answers whether a professional exists and carries
// the requested specialty. Implemented by the directory.
type ProfessionalFinder interface {
	ProfessionalHasSpecialty(ctx context.Context, professionalID uuid.UUID, specialty string) (bool, error)
}

type Service struct {
	repo          Repository
	professionals ProfessionalFinder
	log           zerolog.Logger
}

func NewService(repo Repository, professionals ProfessionalFinder, log zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		professionals: professionals,
		log:           log,
	}
}

// List returns every appointment ordered by scheduled date ascending.
// No pagination, matching the dashboard tables.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return result, nil
}

// ListMine is scoped to rows whose patient email equals the caller's
// authenticated email. This is the only data-layer access filter.
func (s *Service) ListMine(ctx context.Context, email string) ([]Appointment, error) {
	result, err := s.repo.ListByPatientEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list my appointments: %w", err)
	}
	return result, nil
}

type CreateInput struct {
	Date           time.Time
	Description    string
	Specialty      string
	ProfessionalID uuid.UUID
}

// Create books a new appointment. Patient name and email come from the
// authenticated principal, never from the form, and the status is
// always forced to pendente. Validation happens before any DB write.
func (s *Service) Create(ctx context.Context, patientName, patientEmail string, in CreateInput) (*Appointment, error) {
	if patientName == "" || patientEmail == "" ||
		in.Date.IsZero() || in.Description == "" || in.Specialty == "" || in.ProfessionalID == uuid.Nil {
		return nil, ErrMissingFields
	}

	ok, err := s.professionals.ProfessionalHasSpecialty(ctx, in.ProfessionalID, in.Specialty)
	if err != nil {
		return nil, fmt.Errorf("check professional: %w", err)
	}
	if !ok {
		return nil, ErrNoProfessionalForSpecialty
	}

	created, err := s.repo.CreatePending(ctx, Appointment{
		PatientName:    patientName,
		PatientEmail:   patientEmail,
		Date:           in.Date,
		Description:    in.Description,
		Specialty:      in.Specialty,
		ProfessionalID: in.ProfessionalID,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.log.Info().Str("appointment_id", created.ID.String()).Str("especialidade", created.Specialty).Msg("appointment created")
	return created, nil
}

// Transition applies a staff/admin action to an appointment. Approve
// and reject are unconditional status writes with no prior-status
// check. Reschedule is a declared no-op that returns the row unchanged.
// Delete removes the row and returns nil.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, action Action) (*Appointment, error) {
	switch action {
	case ActionApprove:
		return s.updateStatus(ctx, id, StatusAprovada)
	case ActionReject:
		return s.updateStatus(ctx, id, StatusRejeitada)
	case ActionReschedule:
		appt, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("reschedule appointment: %w", err)
		}
		return appt, nil
	case ActionDelete:
		if err := s.repo.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("delete appointment: %w", err)
		}
		s.log.Info().Str("appointment_id", id.String()).Msg("appointment deleted")
		return nil, nil
	default:
		return nil, ErrUnknownAction
	}
}

func (s *Service) updateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	s.log.Info().Str("appointment_id", id.String()).Str("status", string(status)).Msg("appointment status updated")
	return updated, nil
}
