package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
)

// Recover panic 转为通用 500，不返回堆栈
func Recover(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(logrus.Fields{
					"panic": r,
					"path":  c.Request.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("[HTTP] panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorBody{Error: constant.ErrInternal.Message()})
			}
		}()
		c.Next()
	}
}
