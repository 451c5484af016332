package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/government/dto"
	"remotcyberhelp/internal/application/government/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/utils"
)

type listServicesUseCase interface {
	Execute(ctx context.Context, includeInactive bool) ([]*dto.ServiceDTO, error)
	Get(ctx context.Context, code string) (*dto.ServiceDTO, error)
}

type submitRequestUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubmitRequestCommand) (*dto.RequestDTO, error)
}

type trackRequestUseCase interface {
	Execute(ctx context.Context, reference, email string) (*dto.RequestDTO, error)
}

type listRequestsUseCase interface {
	Execute(ctx context.Context, q usecases.ListRequestsQuery) (*appcommon.Page[*dto.RequestDTO], error)
}

type updateRequestStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateRequestStatusCommand) (*dto.RequestDTO, error)
}

type GovernmentRequest struct {
	ServiceCode string `json:"serviceCode" validate:"required,max=50"`
	FullName    string `json:"fullName" validate:"required,max=150"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"required,phone"`
	IDNumber    string `json:"idNumber" validate:"omitempty,max=30"`
	Details     string `json:"details" validate:"omitempty,max=5000"`
}

type GovernmentUseCases struct {
	Services     listServicesUseCase
	Submit       submitRequestUseCase
	Track        trackRequestUseCase
	List         listRequestsUseCase
	UpdateStatus updateRequestStatusUseCase
}

type GovernmentHandler struct {
	uc GovernmentUseCases
}

func NewGovernmentHandler(uc GovernmentUseCases) *GovernmentHandler {
	return &GovernmentHandler{uc: uc}
}

// ListServices handles GET /government/services. Admins may pass
// ?all=true to include retired services.
func (h *GovernmentHandler) ListServices(c *gin.Context) {
	includeInactive := c.Query("all") == "true" && common.Requester(c).IsAdmin()
	services, err := h.uc.Services.Execute(c.Request.Context(), includeInactive)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", services)
}

// GetService handles GET /government/services/:code
func (h *GovernmentHandler) GetService(c *gin.Context) {
	service, err := h.uc.Services.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", service)
}

// Submit godoc
// @Summary      Request a government service
// @Tags         government
// @Accept       json
// @Produce      json
// @Param        request body GovernmentRequest true "Request"
// @Success      201 {object} utils.APIResponse{data=dto.RequestDTO}
// @Failure      400 {object} utils.APIResponse
// @Router       /government/requests [post]
func (h *GovernmentHandler) Submit(c *gin.Context) {
	var req GovernmentRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Submit.Execute(c.Request.Context(), usecases.SubmitRequestCommand{
		ServiceCode: req.ServiceCode,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		IDNumber:    req.IDNumber,
		Details:     req.Details,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Request received")
}

// Track handles GET /government/requests/:reference?email=
func (h *GovernmentHandler) Track(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("email is required").
			WithFields(errors.FieldError{Field: "email", Message: "email is required"}))
		return
	}

	result, err := h.uc.Track.Execute(c.Request.Context(), c.Param("reference"), email)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /admin/government/requests
func (h *GovernmentHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.uc.List.Execute(c.Request.Context(), usecases.ListRequestsQuery{
		Page:        p.Page,
		PageSize:    p.Limit,
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Status:      c.Query("status"),
		ServiceCode: c.Query("serviceCode"),
		Search:      c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	common.RespondPage(c, page)
}

// UpdateStatus handles PATCH /admin/government/requests/:reference/status
func (h *GovernmentHandler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.UpdateStatus.Execute(c.Request.Context(), usecases.UpdateRequestStatusCommand{
		Reference: c.Param("reference"),
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Request updated", result)
}
