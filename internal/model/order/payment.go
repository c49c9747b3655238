package ordermodel

import (
	"time"

	"gorm.io/datatypes"
)

// 支付状态：pending 只能迁移一次到 completed / failed
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment 支付表，transaction_id 在下单时生成
type Payment struct {
	ID              uint           `gorm:"column:id;primaryKey"`
	OrderID         uint           `gorm:"column:order_id;not null"`
	PaymentMethod   string         `gorm:"column:payment_method;not null"`
	Status          string         `gorm:"column:status;default:pending"`
	Amount          float64        `gorm:"column:amount;not null"`
	Currency        string         `gorm:"column:currency;default:VND"`
	TransactionID   string         `gorm:"column:transaction_id;uniqueIndex;size:64"`
	GatewayResponse datatypes.JSON `gorm:"column:gateway_response"` // 已验签的完整回调参数，审计用
	ProcessedAt     *time.Time     `gorm:"column:processed_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}
