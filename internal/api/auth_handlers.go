package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/agendavida/clinic-agenda/internal/auth"
	"github.com/agendavida/clinic-agenda/internal/user"
)

func signUpHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		created, err := svc.SignUp(r.Context(), auth.SignUpInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			UserType: user.UserType(req.UserType),
		})
		if err != nil {
			handleSignUpError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SignUpResponse{
			Message: msgSignupSuccess,
			User:    toUserResponse(*created),
		})
	}
}

func handleSignUpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
	case errors.Is(err, auth.ErrInvalidUserType):
		writeError(w, http.StatusBadRequest, "invalid_user_type", msgInvalidUserType)
	case errors.Is(err, user.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", msgEmailTaken)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func signInHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		session, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
			case errors.Is(err, auth.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid_credentials", msgInvalidCredentials)
			case errors.Is(err, auth.ErrInvalidUserType):
				writeError(w, http.StatusUnauthorized, "invalid_user_type", msgInvalidUserType)
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, SignInResponse{
			Token:      session.Token,
			RedirectTo: session.RedirectTo,
			ExpiresAt:  session.ExpiresAt,
			User:       toUserResponse(session.User),
		})
	}
}

func signOutHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		if err := svc.SignOut(r.Context(), claims); err != nil {
			writeError(w, http.StatusInternalServerError, "logout_failed", msgLogoutFailed)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func currentUserHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		u, err := svc.CurrentUser(r.Context(), id)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user_not_found", "")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(*u))
	}
}

func updateProfileHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not_authenticated", "")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if _, err := svc.UpdateProfile(r.Context(), id, req.Name); err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingFields):
				writeError(w, http.StatusBadRequest, "validation_error", msgAllFieldsRequired)
			case errors.Is(err, user.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "user_not_found", "")
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: msgProfileUpdated})
	}
}
