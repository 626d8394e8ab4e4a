package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/renderer"
	"github.com/fhuszti/katasu-ms-go/internal/thumbhash"
)

// GetPlaceholderHandler serves the decoded thumbhash as an image. A missing or
// malformed hash is reported as not found.
func GetPlaceholderHandler(rnd port.HTTPRenderer, svc port.ImageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "image ID is required", nil)
			return
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = "png"
		}
		width := 0
		if raw := r.URL.Query().Get("width"); raw != "" {
			wd, err := strconv.Atoi(raw)
			if err != nil || wd < 1 {
				WriteError(w, http.StatusBadRequest, "width must be a positive integer", nil)
				return
			}
			width = wd
		}

		res := svc.GetImage(r.Context(), id)
		if !res.Success {
			writeFailure(w, res, "Image not found", "Could not get image details")
			return
		}

		body, contentType, err := rnd.RenderPlaceholder(thumbhash.DecodeBase64(res.Data.Thumbhash), format, width)
		switch {
		case err == nil:
		case errors.Is(err, renderer.ErrUnsupportedFormat):
			WriteError(w, http.StatusBadRequest, "format must be 'png' or 'webp'", nil)
			return
		case errors.Is(err, thumbhash.ErrMalformed):
			WriteError(w, http.StatusNotFound, "Image has no placeholder", nil)
			return
		default:
			WriteError(w, http.StatusInternalServerError, "Could not render placeholder", err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to write placeholder: %v", err)
		}
	}
}
