package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/agendavida/clinic-agenda/internal/appointment"
	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/directory"
	"github.com/agendavida/clinic-agenda/internal/user"
)

type AuthService interface {
	SignUp(ctx context.Context, in auth.SignUpInput) (*user.User, error)
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, claims *auth.Claims) error
	CheckToken(ctx context.Context, token string) (*auth.Claims, error)
	CurrentUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string) (*user.User, error)
}

type AppointmentService interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
	ListMine(ctx context.Context, email string) ([]appointment.Appointment, error)
	Create(ctx context.Context, patientName, patientEmail string, in appointment.CreateInput) (*appointment.Appointment, error)
	Transition(ctx context.Context, id uuid.UUID, action appointment.Action) (*appointment.Appointment, error)
}

type DirectoryService interface {
	SaveProfessional(ctx context.Context, adminID uuid.UUID, in directory.SaveProfessionalInput) (*directory.Professional, error)
	ListProfessionals(ctx context.Context) ([]directory.Professional, error)
	ListProfessionalsBySpecialty(ctx context.Context, specialty string) ([]directory.Professional, error)
	DeleteProfessional(ctx context.Context, id uuid.UUID) error
	SpecialtyNames(ctx context.Context) ([]string, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	CreateUser(ctx context.Context, adminID uuid.UUID, in directory.UserInput) (*user.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in directory.UserInput) (*user.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type RouterConfig struct {
	Auth         AuthService
	Appointments AppointmentService
	Directory    DirectoryService
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	CORSOrigins  []string
	Logger       zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Auth endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", signUpHandler(cfg.Auth))
		r.Post("/signin", signInHandler(cfg.Auth))

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Auth))
			r.Post("/signout", signOutHandler(cfg.Auth))
			r.Get("/me", currentUserHandler(cfg.Auth))
			r.Patch("/me", updateProfileHandler(cfg.Auth))
		})
	})

	// Dashboard endpoints, all behind authentication
	r.Route("/api", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Auth))

		r.Get("/consultas", listConsultasHandler(cfg.Appointments))
		r.Get("/consultas/mine", listMyConsultasHandler(cfg.Appointments))
		r.Post("/consultas", createConsultaHandler(cfg.Appointments, cfg.Auth))

		// Booking form data
		r.Get("/especialidades", listEspecialidadesHandler(cfg.Directory))
		r.Get("/profissionais", listProfissionaisHandler(cfg.Directory))

		// Status transitions require staff or admin, re-validated
		// against the DB on every call
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(cfg.Auth, user.TypeFuncionario, user.TypeAdmin))
			r.Post("/consultas/{id}/approve", transitionConsultaHandler(cfg.Appointments, appointment.ActionApprove))
			r.Post("/consultas/{id}/reject", transitionConsultaHandler(cfg.Appointments, appointment.ActionReject))
			r.Post("/consultas/{id}/reschedule", transitionConsultaHandler(cfg.Appointments, appointment.ActionReschedule))
			r.Delete("/consultas/{id}", transitionConsultaHandler(cfg.Appointments, appointment.ActionDelete))
		})
	})

	// Admin-only directory management
	r.Route("/admin", func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Auth))
		r.Use(RequireRole(cfg.Auth, user.TypeAdmin))

		r.Get("/users", adminListUsersHandler(cfg.Directory))
		r.Post("/users", adminCreateUserHandler(cfg.Directory))
		r.Put("/users/{id}", adminUpdateUserHandler(cfg.Directory))
		r.Delete("/users/{id}", adminDeleteUserHandler(cfg.Directory))

		r.Get("/profissionais", adminListProfissionaisHandler(cfg.Directory))
		r.Post("/profissionais", adminSaveProfissionalHandler(cfg.Directory, false))
		r.Put("/profissionais/{id}", adminSaveProfissionalHandler(cfg.Directory, true))
		r.Delete("/profissionais/{id}", adminDeleteProfissionalHandler(cfg.Directory))

		r.Get("/stats", adminStatsHandler(cfg.Appointments, cfg.Directory))
	})

	return r
}
