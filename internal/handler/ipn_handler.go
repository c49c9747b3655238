package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
)

// 网关回调 body 上限
const maxBodyBytes = 1 << 20

type ipnProcessor interface {
	HandleEvent(ctx context.Context, evt dto.IpnEvent) dto.IpnResult
}

// IpnHandler 网关异步通知入口
type IpnHandler struct{ svc ipnProcessor }

func NewIpnHandler(svc ipnProcessor) *IpnHandler {
	return &IpnHandler{svc: svc}
}

// Callback 网关直接回调（GET query 或 POST 表单）
func (h *IpnHandler) Callback(c *gin.Context) {
	evt, err := eventFromRequest(c.Request)
	if err != nil {
		_ = c.Error(err)
		write(c, dto.ErrorResult(http.StatusBadRequest, constant.ErrMissingParameters.Message()))
		return
	}
	write(c, h.svc.HandleEvent(c.Request.Context(), evt))
}

// Event webhook 代理转发的事件信封
func (h *IpnHandler) Event(c *gin.Context) {
	var evt dto.IpnEvent
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err == nil {
		err = json.Unmarshal(body, &evt)
	}
	if err != nil {
		_ = c.Error(err)
		write(c, dto.ErrorResult(http.StatusBadRequest, constant.ErrMissingParameters.Message()))
		return
	}
	write(c, h.svc.HandleEvent(c.Request.Context(), evt))
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func eventFromRequest(r *http.Request) (dto.IpnEvent, error) {
	evt := dto.IpnEvent{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		QueryStringParameters: firstValues(r.URL.Query()),
		Headers:               firstValues(r.Header),
	}
	if r.Body != nil && r.Method != http.MethodGet {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			return evt, err
		}
		evt.Body = string(body)
	}
	return evt, nil
}

func firstValues(m map[string][]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// write 原样输出服务层生成的 JSON body
func write(c *gin.Context, res dto.IpnResult) {
	c.Data(res.StatusCode, "application/json; charset=utf-8", []byte(res.Body))
}
