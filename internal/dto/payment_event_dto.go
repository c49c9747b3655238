package dto

// 支付事件类型
const (
	EventPaymentCompleted = "payment_completed"
)

// PaymentEvent 支付完成后发布到消息通道的事件
type PaymentEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	TransactionID string            `json:"transaction_id"`
	Timestamp     string            `json:"timestamp"`
	Amount        string            `json:"amount,omitempty"`
	Gateway       string            `json:"gateway,omitempty"`
	Data          map[string]string `json:"data"`
}
