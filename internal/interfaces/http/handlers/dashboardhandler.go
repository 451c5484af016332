package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/admin/dto"
	ticketuc "remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/utils"
)

type adminDashboardUseCase interface {
	Execute(ctx context.Context, requester ticketuc.Requester) (*dto.AdminDashboardResponse, error)
}

// DashboardHandler handles admin dashboard HTTP requests
type DashboardHandler struct {
	getDashboardUseCase adminDashboardUseCase
	logger              logger.Interface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(getDashboardUseCase adminDashboardUseCase, logger logger.Interface) *DashboardHandler {
	return &DashboardHandler{
		getDashboardUseCase: getDashboardUseCase,
		logger:              logger,
	}
}

// GetDashboard godoc
// @Summary      Admin dashboard snapshot
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} utils.APIResponse{data=dto.AdminDashboardResponse}
// @Failure      403 {object} utils.APIResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	requester := common.Requester(c)
	result, err := h.getDashboardUseCase.Execute(c.Request.Context(), requester)
	if err != nil {
		h.logger.Errorw("failed to get admin dashboard", "user_id", requester.UserID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
