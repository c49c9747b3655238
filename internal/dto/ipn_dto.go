package dto

import (
	"encoding/json"
	"net/http"
)

// IpnEvent 传输层请求描述，字段与 webhook 代理转发的事件格式一致
type IpnEvent struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Headers               map[string]string `json:"headers,omitempty"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded"`
}

// IpnResult 传输层响应，Body 为 JSON 字符串
type IpnResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// GatewayAck VNPay 约定的 IPN 应答体
type GatewayAck struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// ErrorBody 适配层通用错误体
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody 无固定应答约定的网关使用
type MessageBody struct {
	Message string `json:"message"`
}

// JSONResult 序列化失败时退化为通用 500
func JSONResult(status int, body interface{}) IpnResult {
	b, err := json.Marshal(body)
	if err != nil {
		return IpnResult{StatusCode: http.StatusInternalServerError, Body: `{"error":"Internal server error"}`}
	}
	return IpnResult{StatusCode: status, Body: string(b)}
}

// ErrorResult 通用 {"error": msg} 响应
func ErrorResult(status int, msg string) IpnResult {
	return JSONResult(status, ErrorBody{Error: msg})
}
