package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/consultation/dto"
	"remotcyberhelp/internal/application/consultation/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/utils"
)

type bookConsultationUseCase interface {
	Execute(ctx context.Context, cmd usecases.BookConsultationCommand) (*dto.ConsultationDTO, error)
}

type availabilityUseCase interface {
	Execute(ctx context.Context, date string) (*dto.AvailabilityDTO, error)
}

type listConsultationsUseCase interface {
	Execute(ctx context.Context, q usecases.ListConsultationsQuery) (*appcommon.Page[*dto.ConsultationDTO], error)
}

type updateConsultationStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateConsultationStatusCommand) (*dto.ConsultationDTO, error)
}

type deleteConsultationUseCase interface {
	Execute(ctx context.Context, id string) error
}

type ConsultationRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email,max=254"`
	Phone         string `json:"phone" validate:"required,phone"`
	ServiceType   string `json:"serviceType" validate:"required,max=100"`
	PreferredDate string `json:"preferredDate" validate:"required,date"`
	PreferredTime string `json:"preferredTime" validate:"required,clock"`
	Mode          string `json:"mode" validate:"omitempty,oneof=remote onsite phone"`
	Message       string `json:"message" validate:"omitempty,max=5000"`
}

type ConsultationUseCases struct {
	Book         bookConsultationUseCase
	Availability availabilityUseCase
	List         listConsultationsUseCase
	UpdateStatus updateConsultationStatusUseCase
	Delete       deleteConsultationUseCase
}

type ConsultationHandler struct {
	uc ConsultationUseCases
}

func NewConsultationHandler(uc ConsultationUseCases) *ConsultationHandler {
	return &ConsultationHandler{uc: uc}
}

// Book godoc
// @Summary      Book a one hour consultation
// @Description  The slot must be in the future, inside working hours and free.
// @Tags         consultation
// @Accept       json
// @Produce      json
// @Param        request body ConsultationRequest true "Booking"
// @Success      201 {object} utils.APIResponse{data=dto.ConsultationDTO}
// @Failure      400 {object} utils.APIResponse
// @Failure      409 {object} utils.APIResponse
// @Router       /consultation [post]
func (h *ConsultationHandler) Book(c *gin.Context) {
	var req ConsultationRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Book.Execute(c.Request.Context(), usecases.BookConsultationCommand{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Mode:          req.Mode,
		Message:       req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Consultation booked successfully")
}

// Availability handles GET /consultation/availability?date=YYYY-MM-DD
func (h *ConsultationHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("date is required").
			WithFields(errors.FieldError{Field: "date", Message: "date is required"}))
		return
	}

	result, err := h.uc.Availability.Execute(c.Request.Context(), date)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /admin/consultations
func (h *ConsultationHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.uc.List.Execute(c.Request.Context(), usecases.ListConsultationsQuery{
		Page:      p.Page,
		PageSize:  p.Limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	common.RespondPage(c, page)
}

// UpdateStatus handles PATCH /admin/consultations/:id/status
func (h *ConsultationHandler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.UpdateStatus.Execute(c.Request.Context(), usecases.UpdateConsultationStatusCommand{
		ID:     c.Param("id"),
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consultation updated", result)
}

// Delete handles DELETE /admin/consultations/:id
func (h *ConsultationHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consultation deleted", nil)
}
