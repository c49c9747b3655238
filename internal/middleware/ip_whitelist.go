package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/utils"
)

// IPWhitelist 仅放行网关回调来源 IP；规则为空时不做限制
func IPWhitelist(rules []string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(rules) == 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !utils.MatchIPRules(ip, rules) {
			log.WithFields(logrus.Fields{"ip": ip, "path": c.Request.URL.Path}).Warn("[HTTP] ip not in whitelist")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorBody{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}
