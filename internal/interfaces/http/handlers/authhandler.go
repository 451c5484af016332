package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/application/user/usecases"
	"remotcyberhelp/internal/interfaces/http/handlers/common"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128"`
}

// AuthUseCases groups the account use cases the auth handler dispatches to.
type AuthUseCases struct {
	Register        registerUseCase
	Login           loginUseCase
	Refresh         refreshTokenUseCase
	GetMe           getMeUseCase
	ChangePassword  changePasswordUseCase
	RequestReset    requestPasswordResetUseCase
	VerifyResetCode verifyResetCodeUseCase
	ResetPassword   resetPasswordUseCase
}

type AuthHandler struct {
	uc     AuthUseCases
	logger logger.Interface
}

func NewAuthHandler(uc AuthUseCases, logger logger.Interface) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Register godoc
// @Summary      Create a customer account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Account"
// @Success      201 {object} utils.APIResponse{data=dto.AuthResultDTO}
// @Failure      400 {object} utils.APIResponse
// @Failure      409 {object} utils.APIResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Register.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Registration successful")
}

// Login godoc
// @Summary      Sign in with email and password
// @Description  Five failed attempts lock the account for two hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} utils.APIResponse{data=dto.AuthResultDTO}
// @Failure      401 {object} utils.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Login.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.IsAccountLockedError(err) {
			h.logger.Warnw("login attempt on locked account", "client_ip", c.ClientIP())
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Refresh.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", result)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.uc.GetMe.Execute(c.Request.Context(), common.CurrentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangePassword handles PUT /auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.uc.ChangePassword.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          common.CurrentUserID(c),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}

// ForgotPassword handles POST /auth/forgot-password. The answer is the same
// whether or not the address has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.RequestReset.Execute(c.Request.Context(), req.Email); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the address is registered, a verification code has been sent", nil)
}

// VerifyResetCode handles POST /auth/verify-reset-code
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.uc.VerifyResetCode.Execute(c.Request.Context(), req.Email, req.Code); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Code verified", gin.H{"valid": true})
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := common.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.uc.ResetPassword.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password has been reset", nil)
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// exists for clients that expect the endpoint.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}
