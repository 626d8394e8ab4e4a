package api

import (
	"errors"
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/usecase/image"
)

func DeleteImageHandler(svc port.ImageDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "image ID is required", nil)
			return
		}
		authID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		if err := svc.DeleteImage(r.Context(), port.DeleteImageInput{AuthUserID: authID, ImageID: id}); err != nil {
			switch {
			case errors.Is(err, image.ErrNotFound):
				WriteError(w, http.StatusNotFound, "Image not found", nil)
			case errors.Is(err, image.ErrForbidden):
				WriteError(w, http.StatusForbidden, "Cannot delete another user's image", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "Failed to delete image", err)
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted image #%s", id)
	}
}
