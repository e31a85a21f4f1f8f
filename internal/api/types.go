package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendavida/clinic-agenda/internal/appointment"
	"github.com/agendavida/clinic-agenda/internal/directory"
	"github.com/agendavida/clinic-agenda/internal/stats"
	"github.com/agendavida/clinic-agenda/internal/user"
)

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

type SignUpResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token      string       `json:"token"`
	RedirectTo string       `json:"redirect_to"`
	ExpiresAt  time.Time    `json:"expires_at"`
	User       UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	UserType string `json:"user_type"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	UserType  string     `json:"user_type"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

func toUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UserType:  string(u.UserType),
		CreatedAt: u.CreatedAt,
		CreatedBy: u.CreatedBy,
	}
}

type CreateConsultaRequest struct {
	Data           time.Time `json:"data"`
	Descricao      string    `json:"descricao"`
	Especialidade  string    `json:"especialidade"`
	ProfissionalID string    `json:"profissional_id"`
}

type ConsultaResponse struct {
	ID             uuid.UUID `json:"id"`
	PacienteNome   string    `json:"paciente_nome"`
	PacienteEmail  string    `json:"paciente_email"`
	Data           time.Time `json:"data"`
	Descricao      string    `json:"descricao"`
	Especialidade  string    `json:"especialidade"`
	ProfissionalID uuid.UUID `json:"profissional_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toConsultaResponse(a appointment.Appointment) ConsultaResponse {
	return ConsultaResponse{
		ID:             a.ID,
		PacienteNome:   a.PatientName,
		PacienteEmail:  a.PatientEmail,
		Data:           a.Date,
		Descricao:      a.Description,
		Especialidade:  a.Specialty,
		ProfissionalID: a.ProfessionalID,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt,
	}
}

func toConsultaResponses(list []appointment.Appointment) []ConsultaResponse {
	out := make([]ConsultaResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toConsultaResponse(a))
	}
	return out
}

type ProfissionalRequest struct {
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Especialidade string `json:"especialidade"`
}

type ProfissionalResponse struct {
	ID             uuid.UUID `json:"id"`
	Nome           string    `json:"nome"`
	Email          string    `json:"email"`
	Telefone       string    `json:"telefone"`
	Especialidades []string  `json:"especialidades"`
	CreatedAt      time.Time `json:"created_at"`
}

func toProfissionalResponse(p directory.Professional) ProfissionalResponse {
	return ProfissionalResponse{
		ID:             p.ID,
		Nome:           p.Name,
		Email:          p.Email,
		Telefone:       p.Phone,
		Especialidades: p.Specialties,
		CreatedAt:      p.CreatedAt,
	}
}

func toProfissionalResponses(list []directory.Professional) []ProfissionalResponse {
	out := make([]ProfissionalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProfissionalResponse(p))
	}
	return out
}

type StatsResponse struct {
	TotalConsultas     int `json:"total_consultas"`
	ConsultasPendentes int `json:"consultas_pendentes"`
	ConsultasAprovadas int `json:"consultas_aprovadas"`
	Funcionarios       int `json:"funcionarios"`
}

func toStatsResponse(s stats.Summary) StatsResponse {
	return StatsResponse{
		TotalConsultas:     s.TotalAppointments,
		ConsultasPendentes: s.PendingAppointments,
		ConsultasAprovadas: s.ApprovedAppointments,
		Funcionarios:       s.StaffAccounts,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
