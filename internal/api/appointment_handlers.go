package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agendavida/clinic-agenda/internal/appointment"
)

func listConsultasHandler(svc AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toConsultaResponses(list))
	}
}

func listMyConsultasHandler(svc AppointmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		list, err := svc.ListMine(r.Context(), claims.Email)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toConsultaResponses(list))
	}
}

func createConsultaHandler(svc AppointmentService, authSvc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		var req CreateConsultaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		var professionalID uuid.UUID
		if req.ProfissionalID != "" {
			var err error
			professionalID, err = uuid.Parse(req.ProfissionalID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_profissional_id", "profissional_id must be a valid UUID")
				return
			}
		}

		// The patient's name and email are stamped from the session,
		// never taken from the form.
		patientName := claims.Email
		if userID, err := uuid.Parse(claims.UserID); err == nil {
			if u, err := authSvc.CurrentUser(r.Context(), userID); err == nil && u.Name != "" {
				patientName = u.Name
			}
		}

		created, err := svc.Create(r.Context(), patientName, claims.Email, appointment.CreateInput{
			Date:           req.Data,
			Description:    req.Descricao,
			Specialty:      req.Especialidade,
			ProfessionalID: professionalID,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
			case errors.Is(err, appointment.ErrNoProfessionalForSpecialty):
				writeError(w, http.StatusBadRequest, "no_professional_for_specialty", msgNoProfessional)
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusCreated, toConsultaResponse(*created))
	}
}

func transitionConsultaHandler(svc AppointmentService, action appointment.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_consulta_id", "id must be a valid UUID")
			return
		}

		updated, err := svc.Transition(r.Context(), id, action)
		if err != nil {
			switch {
			case errors.Is(err, appointment.ErrAppointmentNotFound):
				writeError(w, http.StatusNotFound, "consulta_not_found", err.Error())
			case errors.Is(err, appointment.ErrUnknownAction):
				writeError(w, http.StatusBadRequest, "unknown_action", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		if updated == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, http.StatusOK, toConsultaResponse(*updated))
	}
}
