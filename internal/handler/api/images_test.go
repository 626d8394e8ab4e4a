package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/katasu-ms-go/internal/mock"
	"github.com/fhuszti/katasu-ms-go/internal/model"
	"github.com/fhuszti/katasu-ms-go/internal/port"
	"github.com/fhuszti/katasu-ms-go/internal/result"
	"github.com/go-chi/chi/v5"
)

func TestListUserImagesHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		out        result.Result[port.ImagePage]
		wantStatus int
		wantPage   int
		wantBody   string
	}{
		{
			name:       "default page",
			out:        result.Ok(port.ImagePage{Images: []port.ImageSummary{{ID: "a"}}, Page: 1, HasNext: true}),
			wantStatus: http.StatusOK,
			wantPage:   1,
			wantBody:   `"has_next":true`,
		},
		{
			name:       "explicit page",
			query:      "?page=3",
			out:        result.Ok(port.ImagePage{Page: 3}),
			wantStatus: http.StatusOK,
			wantPage:   3,
			wantBody:   `"images":[]`,
		},
		{
			name:       "invalid page",
			query:      "?page=zero",
			wantStatus: http.StatusBadRequest,
			wantBody:   "page must be a positive integer",
		},
		{
			name:       "negative page",
			query:      "?page=-1",
			wantStatus: http.StatusBadRequest,
			wantBody:   "page must be a positive integer",
		},
		{
			name:       "service failure",
			out:        result.Fail[port.ImagePage]("db down"),
			wantStatus: http.StatusInternalServerError,
			wantPage:   1,
			wantBody:   "Could not list images",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockImageLister{PageOut: tc.out}
			req := withUser(httptest.NewRequest(http.MethodGet, "/users/"+testUserID+"/images"+tc.query, nil), testUserID)
			rec := httptest.NewRecorder()

			ListUserImagesHandler(svc)(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if svc.Page != tc.wantPage {
				t.Errorf("service page = %d; want %d", svc.Page, tc.wantPage)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestCountImagesHandler(t *testing.T) {
	svc := &mock.MockImageCounter{Out: result.Ok(7)}
	req := withUser(httptest.NewRequest(http.MethodGet, "/users/x/images/count", nil), testUserID)
	rec := httptest.NewRecorder()

	CountImagesHandler(svc)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	var out CountImagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 7 {
		t.Errorf("count = %d; want 7", out.Count)
	}
}

func TestCountImagesHandler_Failure(t *testing.T) {
	svc := &mock.MockImageCounter{Out: result.Fail[int]("db down")}
	req := withUser(httptest.NewRequest(http.MethodGet, "/users/x/images/count", nil), testUserID)
	rec := httptest.NewRecorder()

	CountImagesHandler(svc)(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store, max-age=0, must-revalidate" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestListTagImagesHandler(t *testing.T) {
	tests := []struct {
		name       string
		tagID      string
		out        result.Result[[]port.ImageSummary]
		wantStatus int
		wantBody   string
	}{
		{
			name:       "happy path",
			tagID:      testTagID,
			out:        result.Ok([]port.ImageSummary{{ID: "a", Title: "sunset"}}),
			wantStatus: http.StatusOK,
			wantBody:   `"title":"sunset"`,
		},
		{
			name:       "no images",
			tagID:      testTagID,
			out:        result.Ok[[]port.ImageSummary](nil),
			wantStatus: http.StatusOK,
			wantBody:   "[]",
		},
		{
			name:       "invalid tag ID",
			tagID:      "not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantBody:   "tag ID must be a valid UUID",
		},
		{
			name:       "tag not found",
			tagID:      testTagID,
			out:        result.NotFound[[]port.ImageSummary]("tag not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   "Tag not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockImageLister{TagOut: tc.out}
			req := withUser(httptest.NewRequest(http.MethodGet, "/users/x/tags/"+tc.tagID+"/images", nil), testUserID)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("tagId", tc.tagID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			ListTagImagesHandler(svc)(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBody)
			}
			if tc.wantStatus != http.StatusBadRequest && svc.TagID != tc.tagID {
				t.Errorf("service tag = %q; want %q", svc.TagID, tc.tagID)
			}
		})
	}
}

func TestListTagsHandler(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		out        result.Result[[]port.TagOutput]
		wantStatus int
		wantOrder  model.TagOrder
		wantBody   string
	}{
		{
			name:       "default order",
			out:        result.Ok([]port.TagOutput{{ID: "t1", Name: "beach", ImageCount: 3}}),
			wantStatus: http.StatusOK,
			wantOrder:  model.TagOrderUsage,
			wantBody:   `"image_count":3`,
		},
		{
			name:       "by name",
			query:      "?order=name",
			out:        result.Ok[[]port.TagOutput](nil),
			wantStatus: http.StatusOK,
			wantOrder:  model.TagOrderName,
			wantBody:   "[]",
		},
		{
			name:       "unknown order",
			query:      "?order=random",
			wantStatus: http.StatusBadRequest,
			wantBody:   "order must be",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mock.MockTagLister{Out: tc.out}
			req := withUser(httptest.NewRequest(http.MethodGet, "/users/x/tags"+tc.query, nil), testUserID)
			rec := httptest.NewRecorder()

			ListTagsHandler(svc)(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if svc.Order != tc.wantOrder {
				t.Errorf("service order = %q; want %q", svc.Order, tc.wantOrder)
			}
			if !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBody)
			}
		})
	}
}
