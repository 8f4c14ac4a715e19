package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"dorry-backend/internal/domain"
	"dorry-backend/internal/repository"
)

const maxBodyBytes = 1 << 20

// ProjectsHandler serves project CRUD.
type ProjectsHandler struct {
	projects repository.ProjectsRepository
	logger   *zap.Logger
}

func NewProjectsHandler(projects repository.ProjectsRepository, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, logger: logger}
}

// Collection handles GET (list) and POST (create) on /api/projects.
func (h *ProjectsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		projects, err := h.projects.ListProjects(r.Context())
		if err != nil {
			h.logger.Error("Failed to list projects", zap.Error(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(projects))

	case http.MethodPost:
		var p domain.Project
		if err := readBodyJSON(r, maxBodyBytes, &p); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid project data"))
			return
		}
		created, err := h.projects.CreateProject(r.Context(), &p)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(created))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles GET/PUT/DELETE on /api/projects/{id}.
func (h *ProjectsHandler) Item(w http.ResponseWriter, r *http.Request, id int) {
	switch r.Method {
	case http.MethodGet:
		project, err := h.projects.GetProject(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(project))

	case http.MethodPut:
		var upd domain.ProjectUpdate
		if err := readBodyJSON(r, maxBodyBytes, &upd); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid project data"))
			return
		}
		project, err := h.projects.UpdateProject(r.Context(), id, upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(project))

	case http.MethodDelete:
		if err := h.projects.DeleteProject(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
