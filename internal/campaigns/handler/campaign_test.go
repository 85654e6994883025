package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"utmforge/internal/campaigns/service"
	apperrors "utmforge/pkg/errors"
	"utmforge/pkg/model"
)

type mockCampaignService struct {
	generateFunc func(ctx context.Context, prompt, label string, probe bool) (*service.BuildResult, error)
	buildFunc    func(ctx context.Context, rec *model.CampaignRecord, label string, probe bool) (*service.BuildResult, error)
	historyFunc  func(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, int64, error)
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockCampaignService) Generate(ctx context.Context, prompt, label string, probe bool) (*service.BuildResult, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, label, probe)
	}
	return &service.BuildResult{Link: &model.CampaignLink{ID: "1"}}, nil
}

func (m *mockCampaignService) Build(ctx context.Context, rec *model.CampaignRecord, label string, probe bool) (*service.BuildResult, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, rec, label, probe)
	}
	return &service.BuildResult{Link: &model.CampaignLink{ID: "1"}}, nil
}

func (m *mockCampaignService) History(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, int64, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, limit, offset)
	}
	return []*model.CampaignLink{}, 0, nil
}

func (m *mockCampaignService) DeleteLink(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func newTestRouter(svc service.CampaignService) *httprouter.Router {
	router := httprouter.New()
	NewCampaignHandler(svc).RegisterRoutes(router)
	return router
}

func TestGenerateEndpoint(t *testing.T) {
	var gotPrompt, gotLabel string
	var gotProbe bool

	svc := &mockCampaignService{
		generateFunc: func(ctx context.Context, prompt, label string, probe bool) (*service.BuildResult, error) {
			gotPrompt, gotLabel, gotProbe = prompt, label, probe
			return &service.BuildResult{
				Link: &model.CampaignLink{
					ID:       "68a1f2c3d4e5f6a7b8c9d0e1",
					FinalURL: "https://example.com?utm_source=newsletter&utm_medium=email",
				},
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"prompt":"spring sale email to example.com","label":"spring push","probe":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotPrompt != "spring sale email to example.com" {
		t.Errorf("unexpected prompt %q", gotPrompt)
	}
	if gotLabel != "spring push" || !gotProbe {
		t.Errorf("label/probe not forwarded: %q %v", gotLabel, gotProbe)
	}

	var resp struct {
		Data service.BuildResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Link == nil || resp.Data.Link.ID != "68a1f2c3d4e5f6a7b8c9d0e1" {
		t.Errorf("unexpected response link: %+v", resp.Data.Link)
	}
}

func TestGenerateEndpoint_InvalidJSON(t *testing.T) {
	router := newTestRouter(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/generate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateEndpoint_ServiceErrorMapped(t *testing.T) {
	svc := &mockCampaignService{
		generateFunc: func(ctx context.Context, prompt, label string, probe bool) (*service.BuildResult, error) {
			return nil, apperrors.Validation("Extraction response is missing required campaign fields", nil)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/generate", bytes.NewBufferString(`{"prompt":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestBuildEndpoint(t *testing.T) {
	var gotRecord *model.CampaignRecord

	svc := &mockCampaignService{
		buildFunc: func(ctx context.Context, rec *model.CampaignRecord, label string, probe bool) (*service.BuildResult, error) {
			gotRecord = rec
			return &service.BuildResult{
				Link:        &model.CampaignLink{ID: "1", Record: *rec},
				Suggestions: map[string]string{"source": "google_ads"},
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"record":{"website_url":"https://example.com","source":"Google Ads","medium":"cpc","name":"spring_sale"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/build", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotRecord == nil || gotRecord.Source != "Google Ads" {
		t.Errorf("record not forwarded: %+v", gotRecord)
	}

	var resp struct {
		Data service.BuildResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Suggestions["source"] != "google_ads" {
		t.Errorf("expected suggestions in response, got %v", resp.Data.Suggestions)
	}
}

func TestBuildEndpoint_MissingRecord(t *testing.T) {
	router := newTestRouter(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/build", bytes.NewBufferString(`{"label":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a record, got %d", rec.Code)
	}
}

func TestListLinksEndpoint(t *testing.T) {
	var gotLimit int
	var gotOffset int64

	svc := &mockCampaignService{
		historyFunc: func(ctx context.Context, limit int, offset int64) ([]*model.CampaignLink, int64, error) {
			gotLimit, gotOffset = limit, offset
			return []*model.CampaignLink{{ID: "1"}, {ID: "2"}}, 42, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/links?limit=25&offset=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotLimit != 25 || gotOffset != 5 {
		t.Errorf("pagination not forwarded: limit=%d offset=%d", gotLimit, gotOffset)
	}

	var resp struct {
		Data       []*model.CampaignLink `json:"data"`
		TotalCount int64                 `json:"total_count"`
		Limit      int                   `json:"limit"`
		Offset     int64                 `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalCount != 42 || len(resp.Data) != 2 {
		t.Errorf("unexpected page: total=%d links=%d", resp.TotalCount, len(resp.Data))
	}
}

func TestListLinksEndpoint_BadPagination(t *testing.T) {
	router := newTestRouter(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/links?limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-numeric limit, got %d", rec.Code)
	}
}

func TestDeleteLinkEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", apperrors.NotFoundWithID("Campaign link", "abc"), http.StatusNotFound},
		{"invalid id", apperrors.InvalidInput("Invalid campaign link ID format"), http.StatusBadRequest},
		{"internal", apperrors.Internal("Failed to delete campaign link", fmt.Errorf("DB failure")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			svc := &mockCampaignService{
				deleteFunc: func(ctx context.Context, id string) error {
					gotID = id
					return tt.serviceErr
				},
			}
			router := newTestRouter(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/campaigns/links/abc123", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			if gotID != "abc123" {
				t.Errorf("expected id abc123, got %q", gotID)
			}
		})
	}
}
