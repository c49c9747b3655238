package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/config"
	"payment-ipn-api/internal/utils"
)

const telegramAPI = "https://api.telegram.org"

// Alerter 运维告警，实现方自行决定同步或异步
type Alerter interface {
	Alert(level, title string, fields map[string]string)
}

type TelegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
	Parse  string `json:"parse_mode"`
}

// TelegramAlerter 通过 Bot API 发送告警
type TelegramAlerter struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	log      logrus.FieldLogger
}

// NewTelegramAlerter 未配置 botToken 或 chatId 时返回 nil，调用方视为关闭告警
func NewTelegramAlerter(c config.TelegramCfg, log logrus.FieldLogger) *TelegramAlerter {
	if c.BotToken == "" || c.ChatID == "" {
		return nil
	}
	return &TelegramAlerter{
		botToken: c.BotToken,
		chatID:   c.ChatID,
		baseURL:  telegramAPI,
		client:   utils.DefaultHTTPClient,
		log:      log.WithField("component", "telegram"),
	}
}

func (t *TelegramAlerter) SendMessage(ctx context.Context, content string) error {
	body, err := json.Marshal(TelegramMessage{ChatID: t.chatID, Text: content, Parse: "MarkdownV2"})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram status %d", resp.StatusCode)
	}
	return nil
}

// Alert 异步发送，失败只记日志
func (t *TelegramAlerter) Alert(level, title string, fields map[string]string) {
	if t == nil {
		return
	}
	text := FormatAlert(level, title, fields, time.Now())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := t.SendMessage(ctx, text); err != nil {
			t.log.WithError(err).Warn("Telegram 消息发送失败")
		}
	}()
}

// FormatAlert 标题 + 时间 + 按固定顺序输出的字段
func FormatAlert(level, title string, fields map[string]string, at time.Time) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*\\[%s\\] %s*\n", escapeMarkdown(strings.ToUpper(level)), escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", escapeMarkdown(at.Format("2006-01-02 15:04:05"))))

	writeIf := func(label, key string) {
		if v := fields[key]; v != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(label), escapeMarkdown(v)))
		}
	}
	writeIf("支付网关", "gateway")
	writeIf("交易单号", "transaction_id")
	writeIf("交易金额", "amount")
	writeIf("错误信息", "error")
	return sb.String()
}

// escapeMarkdown 转义 Telegram Markdown V2 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)
	return replacer.Replace(s)
}
