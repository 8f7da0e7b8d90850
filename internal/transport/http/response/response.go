// Package response 统一出口：成功直接回 JSON 实体，失败按错误分类映射真实
// HTTP 状态码，500 的内部细节只落日志、不回给客户端。
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-registry/internal/apperr"
)

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Fail 将 apperr 错误映射为 {error: msg}；未分类错误按 500 处理
func Fail(c *gin.Context, log *zap.Logger, err error) {
	code := apperr.CodeOf(err)
	msg := err.Error()
	if code == apperr.CodeServerError {
		// 服务端细节不外露
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Err != nil {
			log.Error(msg, zap.Error(ae.Err), zap.String("path", c.FullPath()))
		} else {
			log.Error(msg, zap.String("path", c.FullPath()))
		}
		msg = http.StatusText(http.StatusInternalServerError)
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
