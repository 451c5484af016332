package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/shared/version"
)

type HealthResponse struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
}

type HealthHandler struct {
	environment string
	now         func() time.Time
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment, now: time.Now}
}

// HealthCheck godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "OK",
		Message:     "RemotCyberHelp API is running",
		Timestamp:   h.now().UTC(),
		Environment: h.environment,
		Version:     version.String(),
	})
}
