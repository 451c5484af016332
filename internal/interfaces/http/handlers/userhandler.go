package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/user/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/utils"
)

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin super_admin"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type UserUseCases struct {
	List       listAccountsUseCase
	ChangeRole changeRoleUseCase
	Unlock     unlockAccountUseCase
	SetActive  setAccountActiveUseCase
}

// UserHandler serves account administration.
type UserHandler struct {
	uc UserUseCases
}

func NewUserHandler(uc UserUseCases) *UserHandler {
	return &UserHandler{uc: uc}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	p := utils.ParsePagination(c)
	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListAccountsQuery{
		Page:      p.Page,
		PageSize:  p.Limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Role:      c.Query("role"),
		Search:    c.Query("search"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Accounts, len(result.Accounts), result.Total, result.Page, result.Limit)
}

// ChangeRole handles PATCH /admin/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	requester := common.Requester(c)
	result, err := h.uc.ChangeRole.Execute(c.Request.Context(), usecases.ChangeRoleCommand{
		UserID:    c.Param("id"),
		Role:      req.Role,
		ActorID:   requester.UserID,
		ActorRole: requester.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated", result)
}

// UnlockUser handles POST /admin/users/:id/unlock
func (h *UserHandler) UnlockUser(c *gin.Context) {
	result, err := h.uc.Unlock.Execute(c.Request.Context(), c.Param("id"), common.CurrentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account unlocked", result)
}

// SetActive handles PATCH /admin/users/:id/active
func (h *UserHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.SetActive.Execute(c.Request.Context(), c.Param("id"), *req.Active, common.CurrentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account updated", result)
}
