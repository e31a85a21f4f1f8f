package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agendavida/clinic-agenda/internal/directory"
	"github.com/agendavida/clinic-agenda/internal/stats"
	"github.com/agendavida/clinic-agenda/internal/user"
)

func listEspecialidadesHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.SpecialtyNames(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}
}

// listProfissionaisHandler backs the booking form. With an
// especialidade query parameter the result is filtered to
// professionals carrying that specialty; an empty result is returned as
// an empty array so the form can show the "Nenhum profissional
// disponível" state.
func listProfissionaisHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []directory.Professional
			err  error
		)

		if specialty := r.URL.Query().Get("especialidade"); specialty != "" {
			list, err = svc.ListProfessionalsBySpecialty(r.Context(), specialty)
		} else {
			list, err = svc.ListProfessionals(r.Context())
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toProfissionalResponses(list))
	}
}

func adminPrincipalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	claims, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not_authenticated", "")
		return uuid.Nil, false
	}
	return id, true
}

func adminListUsersHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		out := make([]UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func adminCreateUserHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := adminPrincipalID(w, r)
		if !ok {
			return
		}

		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Password != "" && len(req.Password) < 6 {
			writeError(w, http.StatusBadRequest, "validation_error", msgPasswordTooShort)
			return
		}

		created, err := svc.CreateUser(r.Context(), adminID, directory.UserInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			UserType: user.UserType(req.UserType),
		})
		if err != nil {
			handleDirectoryUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(*created))
	}
}

func adminUpdateUserHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "id must be a valid UUID")
			return
		}

		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		updated, err := svc.UpdateUser(r.Context(), id, directory.UserInput{
			Name:     req.Name,
			Email:    req.Email,
			UserType: user.UserType(req.UserType),
		})
		if err != nil {
			handleDirectoryUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(*updated))
	}
}

func adminDeleteUserHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			handleDirectoryUserError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDirectoryUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directory.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", msgEmailTaken)
	case errors.Is(err, user.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func adminListProfissionaisHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListProfessionals(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toProfissionalResponses(list))
	}
}

func adminSaveProfissionalHandler(svc DirectoryService, update bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := adminPrincipalID(w, r)
		if !ok {
			return
		}

		in := directory.SaveProfessionalInput{}
		if update {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_profissional_id", "id must be a valid UUID")
				return
			}
			in.ID = &id
		}

		var req ProfissionalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		in.Name = req.Nome
		in.Email = req.Email
		in.Phone = req.Telefone
		in.Specialty = req.Especialidade

		saved, err := svc.SaveProfessional(r.Context(), adminID, in)
		if err != nil {
			switch {
			case errors.Is(err, directory.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
			case errors.Is(err, directory.ErrProfessionalNotFound):
				writeError(w, http.StatusNotFound, "profissional_not_found", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		status := http.StatusCreated
		if update {
			status = http.StatusOK
		}
		writeJSON(w, status, toProfissionalResponse(*saved))
	}
}

func adminDeleteProfissionalHandler(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_profissional_id", "id must be a valid UUID")
			return
		}

		if err := svc.DeleteProfessional(r.Context(), id); err != nil {
			if errors.Is(err, directory.ErrProfessionalNotFound) {
				writeError(w, http.StatusNotFound, "profissional_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// adminStatsHandler recomputes the dashboard counters from the same
// lists the page fetches, with no dedicated queries.
func adminStatsHandler(appts AppointmentService, dir DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consultas, err := appts.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		users, err := dir.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toStatsResponse(stats.Compute(consultas, users)))
	}
}
