package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPClient 外部回查使用的客户端（超时 10s）
var DefaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// HttpPostForm 发送 application/x-www-form-urlencoded 请求，返回响应体
func HttpPostForm(ctx context.Context, client *http.Client, url, form string) (string, error) {
	if client == nil {
		client = DefaultHTTPClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form))
	if err != nil {
		return "", fmt.Errorf("new request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "PaymentIPN/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("read response error: %w", err)
	}

	// 如果状态码不是 200，返回错误
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status code: %d, body: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
