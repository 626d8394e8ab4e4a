package api

import (
	"net/http"

	"github.com/fhuszti/katasu-ms-go/internal/api_context"
	"github.com/fhuszti/katasu-ms-go/internal/logger"
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
)

func ListTagsHandler(svc port.TagLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "user ID is required", nil)
			return
		}
		order, ok := model.ParseTagOrder(r.URL.Query().Get("order"))
		if !ok {
			WriteError(w, http.StatusBadRequest, "order must be 'usage' or 'name'", nil)
			return
		}

		res := svc.ListTags(r.Context(), id, order)
		if !res.Success {
			writeFailure(w, res, "User not found", "Could not list tags")
			return
		}

		RespondJSON(w, http.StatusOK, orEmpty(res.Data))
		logger.Infof(r.Context(), "✅  Returned %d tag(s) of user #%s", len(res.Data), id)
	}
}
