package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agendavida/clinic-agenda/internal/redisclient"
	"github.com/agendavida/clinic-agenda/internal/user"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session is what a successful sign-in hands back to the client: the
// bearer token plus the dashboard route for the principal's role.
type Session struct {
	Token      string
	User       user.User
	RedirectTo string
	ExpiresAt  time.Time
}

type Service struct {
	users   user.Repository
	tokens  *TokenManager
	revoked redisclient.RevocationStore
	log     zerolog.Logger
}

func NewService(users user.Repository, tokens *TokenManager, revoked redisclient.RevocationStore, log zerolog.Logger) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		revoked: revoked,
		log:     log,
	}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	UserType user.UserType
}

// SignUp validates the form before touching the database, then creates
// the principal row. The role defaults to cliente and is fixed after
// signup, there is no role-change flow.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*user.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	userType := in.UserType
	if userType == "" {
		userType = user.TypeCliente
	}
	if !userType.Valid() {
		return nil, ErrInvalidUserType
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		UserType:     userType,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID.String()).Str("user_type", string(created.UserType)).Msg("user signed up")
	return created, nil
}

// SignIn checks credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if !CheckPasswordHash(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	route := u.UserType.DashboardRoute()
	if route == "" {
		return nil, ErrInvalidUserType
	}

	token, claims, err := s.tokens.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info().Str("user_id", u.ID.String()).Str("user_type", string(u.UserType)).Msg("user signed in")

	return &Session{
		Token:      token,
		User:       *u,
		RedirectTo: route,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

// SignOut revokes the token until it would have expired on its own.
func (s *Service) SignOut(ctx context.Context, claims *Claims) error {
	until := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, until); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	s.log.Info().Str("user_id", claims.UserID).Msg("user signed out")
	return nil
}

// CheckToken validates a bearer token and rejects revoked sessions.
func (s *Service) CheckToken(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) CurrentUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes the display name only. Email is immutable from
// the profile form.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, name string) (*user.User, error) {
	if name == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Name = name
	return s.users.Update(ctx, *u)
}
