package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/user"
)

var ErrMissingFields = errors.New("missing required fields")

// Service is the admin-facing directory of professionals, specialties
// and user accounts.
type Service struct {
	professionals ProfessionalRepository
	users         user.Repository
	log           zerolog.Logger
}

func NewService(professionals ProfessionalRepository, users user.Repository, log zerolog.Logger) *Service {
	return &Service{
		professionals: professionals,
		users:         users,
		log:           log,
	}
}

type SaveProfessionalInput struct {
	ID        *uuid.UUID // nil on create
	Name      string
	Email     string
	Phone     string
	Specialty string
}

// SaveProfessional performs the three-step write from the professional
// form: upsert the specialty by name, upsert the professional row, then
// upsert the association. The steps are deliberately not wrapped in a
// transaction; a failure mid-sequence leaves the earlier rows behind.
// Specialty rows are deduplicated by name, so the leftovers are
// harmless.
func (s *Service) SaveProfessional(ctx context.Context, adminID uuid.UUID, in SaveProfessionalInput) (*Professional, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Specialty == "" {
		return nil, ErrMissingFields
	}

	specialtyName := strings.TrimSpace(in.Specialty)

	specialty, err := s.professionals.UpsertSpecialty(ctx, specialtyName)
	if err != nil {
		return nil, fmt.Errorf("upsert specialty: %w", err)
	}

	prof := Professional{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedBy: &adminID,
	}
	if in.ID != nil {
		existing, err := s.professionals.GetByID(ctx, *in.ID)
		if err != nil {
			return nil, fmt.Errorf("load professional: %w", err)
		}
		prof.ID = existing.ID
		prof.Specialties = existing.Specialties
		prof.CreatedBy = existing.CreatedBy
	}
	if !prof.HasSpecialty(specialtyName) {
		prof.Specialties = append(prof.Specialties, specialtyName)
	}

	saved, err := s.professionals.Upsert(ctx, prof)
	if err != nil {
		return nil, fmt.Errorf("upsert professional: %w", err)
	}

	if err := s.professionals.UpsertAssociation(ctx, saved.ID, specialty.ID); err != nil {
		return nil, fmt.Errorf("upsert professional specialty: %w", err)
	}

	s.log.Info().Str("professional_id", saved.ID.String()).Str("especialidade", specialtyName).Msg("professional saved")
	return saved, nil
}

func (s *Service) ListProfessionals(ctx context.Context) ([]Professional, error) {
	result, err := s.professionals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return result, nil
}

// ListProfessionalsBySpecialty backs the booking form's professional
// selector, re-queried whenever a specialty is chosen.
func (s *Service) ListProfessionalsBySpecialty(ctx context.Context, specialty string) ([]Professional, error) {
	result, err := s.professionals.ListBySpecialty(ctx, specialty)
	if err != nil {
		return nil, fmt.Errorf("list professionals by specialty: %w", err)
	}
	return result, nil
}

func (s *Service) DeleteProfessional(ctx context.Context, id uuid.UUID) error {
	if err := s.professionals.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete professional: %w", err)
	}
	s.log.Info().Str("professional_id", id.String()).Msg("professional deleted")
	return nil
}

// ProfessionalHasSpecialty reports whether the professional exists and
// carries the given specialty. Used by the booking flow.
func (s *Service) ProfessionalHasSpecialty(ctx context.Context, professionalID uuid.UUID, specialty string) (bool, error) {
	p, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.HasSpecialty(specialty), nil
}

// SpecialtyNames projects the specialty lists of every professional
// and deduplicates in memory, the same way the booking form populated
// its selector.
func (s *Service) SpecialtyNames(ctx context.Context) ([]string, error) {
	professionals, err := s.professionals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, p := range professionals {
		for _, sp := range p.Specialties {
			if _, ok := seen[sp]; ok {
				continue
			}
			seen[sp] = struct{}{}
			names = append(names, sp)
		}
	}
	return names, nil
}

type UserInput struct {
	Name     string
	Email    string
	Password string
	UserType user.UserType
}

func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return result, nil
}

// CreateUser is the admin user form. The password is only accepted
// here, never on update, and the admin's id is recorded as created_by.
func (s *Service) CreateUser(ctx context.Context, adminID uuid.UUID, in UserInput) (*user.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	userType := in.UserType
	if userType == "" {
		userType = user.TypeCliente
	}
	if !userType.Valid() {
		return nil, fmt.Errorf("create user: unknown user type %q", userType)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     userType,
		CreatedBy:    &adminID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID.String()).Str("created_by", adminID.String()).Msg("user created by admin")
	return created, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UserInput) (*user.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = in.Email
	if in.UserType != "" {
		if !in.UserType.Valid() {
			return nil, fmt.Errorf("update user: unknown user type %q", in.UserType)
		}
		existing.UserType = in.UserType
	}

	return s.users.Update(ctx, *existing)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id.String()).Msg("user deleted by admin")
	return nil
}
