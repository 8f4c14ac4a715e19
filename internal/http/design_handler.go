package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/repository"
	"dorry-backend/internal/service"
)

// DesignsHandler serves the design version log and the generation
// entrypoint.
type DesignsHandler struct {
	designs   repository.DesignsRepository
	designSvc *service.DesignService
	logger    *zap.Logger
}

func NewDesignsHandler(designs repository.DesignsRepository, designSvc *service.DesignService, logger *zap.Logger) *DesignsHandler {
	return &DesignsHandler{designs: designs, designSvc: designSvc, logger: logger}
}

type createDesignRequest struct {
	DesignData        domain.DesignData  `json:"designData"`
	EnvironmentalData domain.WeatherData `json:"environmentalData"`
}

// Collection handles GET (list versions, newest first) and POST
// (create explicit version) on /api/projects/{id}/designs.
func (h *DesignsHandler) Collection(w http.ResponseWriter, r *http.Request, projectID int) {
	switch r.Method {
	case http.MethodGet:
		designs, err := h.designs.ListDesignVersions(r.Context(), projectID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(designs))

	case http.MethodPost:
		var req createDesignRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid design data"))
			return
		}
		design, err := h.designSvc.CreateDesign(r.Context(), projectID, req.DesignData, req.EnvironmentalData)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(design))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Latest handles GET /api/projects/{id}/designs/latest.
func (h *DesignsHandler) Latest(w http.ResponseWriter, r *http.Request, projectID int) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	design, err := h.designs.GetLatestDesign(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(design))
}

// Generate handles POST /api/projects/{id}/generate-design: the full
// environmental-analysis → layout → BOQ pipeline.
func (h *DesignsHandler) Generate(w http.ResponseWriter, r *http.Request, projectID int) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := h.designSvc.GenerateDesign(r.Context(), projectID)
	if err != nil {
		h.logger.Error("Design generation failed",
			zap.Int("project_id", projectID), zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(result))
}
