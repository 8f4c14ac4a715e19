package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"dorry-backend/internal/service"
)

// EnvironmentHandler serves standalone environmental analysis lookups.
type EnvironmentHandler struct {
	weather service.EnvironmentalProvider
	logger  *zap.Logger
}

func NewEnvironmentHandler(weather service.EnvironmentalProvider, logger *zap.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{weather: weather, logger: logger}
}

// Analysis handles GET /api/environmental-analysis?latitude=&longitude=.
func (h *EnvironmentHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	latitude, latErr := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	longitude, lonErr := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if latErr != nil || lonErr != nil ||
		latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		writeJSON(w, http.StatusBadRequest, Fail("invalid coordinates"))
		return
	}

	data := h.weather.GetEnvironmentalData(r.Context(), latitude, longitude)
	writeJSON(w, http.StatusOK, Ok(data))
}
