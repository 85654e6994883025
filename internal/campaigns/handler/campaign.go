package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"utmforge/internal/campaigns/service"
	apperrors "utmforge/pkg/errors"
	httputil "utmforge/pkg/http"
	"utmforge/pkg/model"
)

type CampaignHandler struct {
	service service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{service: service}
}

func (h *CampaignHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/campaigns/generate", h.Generate)
	router.POST("/api/v1/campaigns/build", h.Build)
	router.GET("/api/v1/campaigns/links", h.ListLinks)
	router.DELETE("/api/v1/campaigns/links/:id", h.DeleteLink)
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Label  string `json:"label,omitempty"`
	Probe  bool   `json:"probe,omitempty"`
}

type buildRequest struct {
	Record *model.CampaignRecord `json:"record"`
	Label  string                `json:"label,omitempty"`
	Probe  bool                  `json:"probe,omitempty"`
}

// Generate handles POST /api/v1/campaigns/generate: free text in, a built
// and persisted campaign link out.
func (h *CampaignHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON request body"))
		return
	}

	result, err := h.service.Generate(r.Context(), req.Prompt, req.Label, req.Probe)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, result)
}

// Build handles POST /api/v1/campaigns/build: the field-editing path that
// rebuilds the URL from an edited record without an extraction call.
func (h *CampaignHandler) Build(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid JSON request body"))
		return
	}
	if req.Record == nil {
		httputil.WriteError(w, apperrors.InvalidInput("Request body must contain a campaign record"))
		return
	}

	result, err := h.service.Build(r.Context(), req.Record, req.Label, req.Probe)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, result)
}

func (h *CampaignHandler) ListLinks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	links, count, err := h.service.History(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, links, count, limit, offset)
}

func (h *CampaignHandler) DeleteLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteLink(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}
