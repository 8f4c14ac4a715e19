package httpapi

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/repository"
	"dorry-backend/internal/service"
)

// BOQHandler serves the live cost estimate and its spreadsheet export.
type BOQHandler struct {
	projects  repository.ProjectsRepository
	boqs      repository.BOQRepository
	estimator *service.Estimator
	logger    *zap.Logger
}

func NewBOQHandler(projects repository.ProjectsRepository, boqs repository.BOQRepository, estimator *service.Estimator, logger *zap.Logger) *BOQHandler {
	return &BOQHandler{projects: projects, boqs: boqs, estimator: estimator, logger: logger}
}

type budgetWarning struct {
	Message    string  `json:"message"`
	Difference float64 `json:"difference"`
}

type boqResponse struct {
	BOQ             *domain.BOQ        `json:"boq"`
	CategorySummary map[string]float64 `json:"categorySummary"`
	BudgetWarning   *budgetWarning     `json:"budgetWarning"`
}

// Get handles GET /api/projects/{id}/boq: the BOQ, its per-category
// totals, and a budget warning when the estimate exceeds the project
// budget.
func (h *BOQHandler) Get(w http.ResponseWriter, r *http.Request, projectID int) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	project, err := h.projects.GetProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	boq, err := h.boqs.GetBOQ(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := boqResponse{
		BOQ:             boq,
		CategorySummary: h.estimator.GroupByCategory(boq.Items),
	}
	if project.Budget > 0 && boq.TotalCost > project.Budget {
		resp.BudgetWarning = &budgetWarning{
			Message:    "The estimated cost exceeds the project budget",
			Difference: boq.TotalCost - project.Budget,
		}
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// Export handles GET /api/projects/{id}/boq/export and returns the
// estimate as an .xlsx workbook.
func (h *BOQHandler) Export(w http.ResponseWriter, r *http.Request, projectID int) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	project, err := h.projects.GetProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	boq, err := h.boqs.GetBOQ(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := BuildBOQWorkbook(project.Name, boq, h.estimator.GroupByCategory(boq.Items))
	if err != nil {
		h.logger.Error("Failed to build BOQ workbook",
			zap.Int("project_id", projectID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export BOQ"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="boq_project_%d.xlsx"`, projectID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
