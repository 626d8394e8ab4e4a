package api

import (
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

func GetImageHandler(rnd port.HTTPRenderer, svc port.ImageGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "image ID is required", nil)
			return
		}

		res := svc.GetImage(r.Context(), id)
		if !res.Success {
			writeFailure(w, res, "Image not found", "Could not get image details")
			return
		}

		raw, etag, err := rnd.RenderJSON(res.Data)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not get image details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=60")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Infof(r.Context(), "✅  Image #%s not modified", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Infof(r.Context(), "✅  Successfully returned details for image #%s", id)
	}
}
