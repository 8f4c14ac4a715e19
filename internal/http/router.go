package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router uses the stdlib http.ServeMux (deliberately no third-party
// router dependency). Project sub-resources are dispatched manually by
// path segment.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAPIRoutes wires the whole /api surface.
func (r *Router) RegisterAPIRoutes(
	projects *ProjectsHandler,
	designs *DesignsHandler,
	boq *BOQHandler,
	chat *ChatHandler,
	env *EnvironmentHandler,
) {
	r.Handle("/api/projects", projects.Collection)

	// /api/projects/{id}[/designs[/latest]|/generate-design|/boq[/export]|/chat]
	r.Handle("/api/projects/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/api/projects/")
		segments := strings.Split(strings.Trim(rest, "/"), "/")
		if len(segments) == 0 || segments[0] == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		id, err := parseID(segments[0])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid project id"))
			return
		}

		if len(segments) == 1 {
			projects.Item(w, req, id)
			return
		}

		switch segments[1] {
		case "designs":
			if len(segments) == 2 {
				designs.Collection(w, req, id)
				return
			}
			if len(segments) == 3 && segments[2] == "latest" {
				designs.Latest(w, req, id)
				return
			}
		case "generate-design":
			if len(segments) == 2 {
				designs.Generate(w, req, id)
				return
			}
		case "boq":
			if len(segments) == 2 {
				boq.Get(w, req, id)
				return
			}
			if len(segments) == 3 && segments[2] == "export" {
				boq.Export(w, req, id)
				return
			}
		case "chat":
			if len(segments) == 2 {
				chat.Handle(w, req, id)
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	})

	r.Handle("/api/environmental-analysis", env.Analysis)
	r.Handle("/api/tts/status", chat.TTSStatus)

	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok("ok"))
	})
}
