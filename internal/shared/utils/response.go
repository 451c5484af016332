package utils

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/shared/errors"
)

var exposeErrorDetails atomic.Bool

// SetExposeErrorDetails toggles whether error details are written to clients.
// It is enabled for every environment except production.
func SetExposeErrorDetails(expose bool) {
	exposeErrorDetails.Store(expose)
}

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []errors.FieldError `json:"errors,omitempty"`
	Error   *ErrorInfo          `json:"error,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Details string `json:"details,omitempty"`
}

// PaginationInfo is the pagination block of list responses.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Count      int   `json:"count"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewPaginationInfo fills the derived fields of a pagination block.
func NewPaginationInfo(page, limit, count int, total int64) PaginationInfo {
	return PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: TotalPages(total, limit),
		Count:      count,
	}
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: "Resource created successfully",
	}
	if len(message) > 0 {
		response.Message = message[0]
	}
	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with custom status code and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Error:   &ErrorInfo{Type: "error"},
	})
}

// ErrorResponseWithError sends an error response based on error type
func ErrorResponseWithError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		// non-AppError values never leak their text
		response := APIResponse{
			Success: false,
			Message: "Internal server error occurred",
			Error:   &ErrorInfo{Type: string(errors.ErrorTypeInternal)},
		}
		if exposeErrorDetails.Load() {
			response.Error.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	info := &ErrorInfo{Type: string(appErr.Type)}
	if exposeErrorDetails.Load() {
		info.Details = appErr.Details
	}
	c.JSON(appErr.Code, APIResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
		Error:   info,
	})
}

// ListSuccessResponse sends a successful list response with pagination
func ListSuccessResponse(c *gin.Context, items interface{}, count int, total int64, page, limit int, message ...string) {
	response := APIResponse{
		Success: true,
		Data: ListResponse{
			Items:      items,
			Pagination: NewPaginationInfo(page, limit, count, total),
		},
	}
	if len(message) > 0 {
		response.Message = message[0]
	}
	c.JSON(http.StatusOK, response)
}

// NoContentResponse sends a no content response
func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
