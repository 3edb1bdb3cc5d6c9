package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/wfunc/wager-engine/internal/errors"
)

// respondError 将应用错误翻译为HTTP响应
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrUnknown)
	}
	c.JSON(appErr.HTTPStatus(), apperrors.NewErrorResponse(appErr, c.GetHeader("X-Request-ID")))
}

// userIDFrom 从请求头解析用户ID。
// 认证由上游网关完成，这里只信任转发的身份头。
func userIDFrom(c *gin.Context) (uint, bool) {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams 解析分页参数
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
