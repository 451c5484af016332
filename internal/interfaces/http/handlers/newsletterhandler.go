package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/application/newsletter/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type subscribeUseCase interface {
	Execute(ctx context.Context, email, name string) (*usecases.SubscribeResult, error)
}

type unsubscribeUseCase interface {
	Execute(ctx context.Context, token string) error
}

type listSubscribersUseCase interface {
	Execute(ctx context.Context, q usecases.ListSubscribersQuery) (*appcommon.Page[*usecases.SubscriberDTO], error)
}

type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

type UnsubscribeRequest struct {
	Token string `json:"token" validate:"required"`
}

type NewsletterHandler struct {
	subscribe   subscribeUseCase
	unsubscribe unsubscribeUseCase
	list        listSubscribersUseCase
}

func NewNewsletterHandler(subscribe subscribeUseCase, unsubscribe unsubscribeUseCase, list listSubscribersUseCase) *NewsletterHandler {
	return &NewsletterHandler{
		subscribe:   subscribe,
		unsubscribe: unsubscribe,
		list:        list,
	}
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Subscribing twice is not an error; an unsubscribed address is reactivated.
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body SubscribeRequest true "Subscriber"
// @Success      200 {object} utils.APIResponse
// @Success      201 {object} utils.APIResponse
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.subscribe.Execute(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result.Subscriber, "Subscribed successfully")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "You are already subscribed", result.Subscriber)
}

// Unsubscribe handles POST /newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.unsubscribe.Execute(c.Request.Context(), req.Token); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Unsubscribed", nil)
}

// List handles GET /admin/newsletter/subscribers
func (h *NewsletterHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)
	page, err := h.list.Execute(c.Request.Context(), usecases.ListSubscribersQuery{
		Page:      p.Page,
		PageSize:  p.Limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Active:    common.QueryBool(c, "active"),
		Search:    c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	common.RespondPage(c, page)
}
