package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// Health отвечает 200 {"status":"ok"}, если БД доступна, иначе 503.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Log.Warn("health check failed", zap.Error(err))
		WriteJSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable"})
		return
	}
	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
