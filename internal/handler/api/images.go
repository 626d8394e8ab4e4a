package api

import (
	"net/http"
	"strconv"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func ListUserImagesHandler(svc port.ImageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}
		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil || p < 1 {
				WriteError(w, http.StatusBadRequest, "page must be a positive integer", nil)
				return
			}
			page = p
		}

		res := svc.ListUserImages(r.Context(), id, page)
		if !res.Success {
			writeFailure(w, res, "User not found", "Could not list images")
			return
		}

		out := res.Data
		out.Images = orEmpty(out.Images)
		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Returned page %d of images of user #%s", page, id)
	}
}

type CountImagesResponse struct {
	Count int `json:"count"`
}

func CountImagesHandler(svc port.ImageCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}

		res := svc.CountImages(r.Context(), id)
		if !res.Success {
			writeFailure(w, res, "User not found", "Could not count images")
			return
		}

		RespondJSON(w, http.StatusOK, CountImagesResponse{Count: res.Data})
	}
}

func ListTagImagesHandler(svc port.ImageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}
		parsed, err := uuid.Parse(chi.URLParam(r, "tagId"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "tag ID must be a valid UUID", nil)
			return
		}
		tagID := parsed.String()

		res := svc.ListTagImages(r.Context(), id, tagID)
		if !res.Success {
			writeFailure(w, res, "Tag not found", "Could not list images")
			return
		}

		RespondJSON(w, http.StatusOK, orEmpty(res.Data))
		logger.Infof(r.Context(), "✅  Returned %d image(s) of user #%s with tag #%s", len(res.Data), id, tagID)
	}
}
