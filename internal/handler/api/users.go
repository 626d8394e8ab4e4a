package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/usecase/user"
	"github.com/fhuszti/katasu-ms-go/internal/validation"
)

func GetUserHandler(svc port.UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}

		res := svc.GetPublicUser(r.Context(), id)
		if !res.Success {
			writeFailure(w, res, "User not found", "Could not get user")
			return
		}

		RespondJSON(w, http.StatusOK, res.Data)
		logger.Infof(r.Context(), "✅  Successfully returned user #%s", id)
	}
}

type UpdateUserRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func UpdateUserHandler(svc port.UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}
		authID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		err := svc.UpdateUser(r.Context(), port.UpdateUserInput{
			AuthUserID: authID,
			UserID:     id,
			Name:       req.Name,
			Bio:        req.Bio,
		})
		switch {
		case err == nil:
		case validation.IsValidationError(err):
			errsJSON, jerr := validation.ErrorsToJson(err)
			if jerr != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", jerr))
				return
			}
			// return the validation errors payload directly
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		case errors.Is(err, user.ErrForbidden):
			WriteError(w, http.StatusForbidden, "Cannot edit another user", nil)
			return
		case errors.Is(err, user.ErrNotFound):
			WriteError(w, http.StatusNotFound, "User not found", nil)
			return
		default:
			WriteError(w, http.StatusInternalServerError, "Could not update user", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully updated user #%s", id)
	}
}
