package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/contact/dto"
	"remotcyberhelp/internal/application/contact/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type submitMessageUseCase interface {
	Execute(ctx context.Context, cmd usecases.SubmitMessageCommand) (*dto.MessageDTO, error)
}

type listMessagesUseCase interface {
	Execute(ctx context.Context, q usecases.ListMessagesQuery) (*appcommon.Page[*dto.MessageDTO], error)
}

type updateMessageStatusUseCase interface {
	Execute(ctx context.Context, id, status string) (*dto.MessageDTO, error)
}

type deleteMessageUseCase interface {
	Execute(ctx context.Context, id string) error
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Service string `json:"service" validate:"omitempty,max=100"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"omitempty,max=5000"`
}

type ContactUseCases struct {
	Submit       submitMessageUseCase
	List         listMessagesUseCase
	UpdateStatus updateMessageStatusUseCase
	Delete       deleteMessageUseCase
}

type ContactHandler struct {
	uc ContactUseCases
}

func NewContactHandler(uc ContactUseCases) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Submit godoc
// @Summary      Send a message through the contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Message"
// @Success      201 {object} utils.APIResponse{data=dto.MessageDTO}
// @Failure      400 {object} utils.APIResponse
// @Failure      429 {object} utils.APIResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Submit.Execute(c.Request.Context(), usecases.SubmitMessageCommand{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Thank you for your message. We will get back to you shortly.")
}

// List handles GET /admin/contacts
func (h *ContactHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.uc.List.Execute(c.Request.Context(), usecases.ListMessagesQuery{
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

// UpdateStatus handles PATCH /admin/contacts/:id/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.UpdateStatus.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message updated", result)
}

// Delete handles DELETE /admin/contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete.Execute(c.Request.Context(), c.Param("id")); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message deleted", nil)
}
