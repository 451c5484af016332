// Package common provides shared HTTP handler utilities.
package common

import (
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"

	ticketuc "remotcyberhelp/internal/application/ticket/usecases"
	"remotcyberhelp/internal/shared/authorization"
	"remotcyberhelp/internal/shared/constants"
	"remotcyberhelp/internal/shared/errors"
	"remotcyberhelp/internal/shared/utils"
)

// BindJSON decodes the body into req and runs struct validation. Both
// failures come back as validation errors so handlers answer 400.
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if stderrors.Is(err, io.EOF) {
			return errors.NewValidationError("Request body is required")
		}
		return errors.NewValidationError("Invalid request body", err.Error())
	}
	return utils.ValidateStruct(req)
}

// Requester builds the caller identity set by the auth middleware. It is
// the zero value for anonymous requests.
func Requester(c *gin.Context) ticketuc.Requester {
	return ticketuc.Requester{
		UserID: c.GetString(constants.ContextKeyUserID),
		Email:  c.GetString(constants.ContextKeyUserEmail),
		Role:   authorization.UserRole(c.GetString(constants.ContextKeyUserRole)),
	}
}

func CurrentUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(c *gin.Context, key string) *bool {
	switch c.Query(key) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}
