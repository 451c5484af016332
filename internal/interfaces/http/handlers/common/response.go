package common

import (
	"github.com/gin-gonic/gin"

	appcommon "remotcyberhelp/internal/application/common"
	"remotcyberhelp/internal/shared/utils"
)

// RespondPage writes a paginated list envelope.
func RespondPage[T any](c *gin.Context, page *appcommon.Page[T]) {
	utils.ListSuccessResponse(c, page.Items, len(page.Items), page.Total, page.Page, page.Limit)
}
