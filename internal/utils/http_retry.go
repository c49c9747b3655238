package utils

import (
	"context"
	"fmt"
	"time"
)

// DoWithRetry 执行带重试逻辑的函数，onErr 可用于记录每次失败
func DoWithRetry(ctx context.Context, maxRetries int, interval time.Duration, fn func() error, onErr func(attempt int, err error)) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if onErr != nil {
			onErr(attempt, err)
		}

		// 最后一次失败则直接返回
		if attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("context done after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(interval):
		}
	}
	return err
}
