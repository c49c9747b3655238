package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes guards 作用于 IPN 路由（如 IP 白名单），healthz 不受限
func RegisterRoutes(r *gin.Engine, h *IpnHandler, guards ...gin.HandlerFunc) {
	r.GET("/healthz", Health)

	v1 := r.Group("/api/v1/payments", guards...)
	{
		v1.GET("/ipn", h.Callback)
		v1.POST("/ipn", h.Callback)
		v1.POST("/ipn/event", h.Event)
	}
}
