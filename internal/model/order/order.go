package ordermodel

import "time"

// 订单状态，仅在支付完成时由 IPN 更新
const (
	OrderStatusConfirmed = "confirmed"
	OrderPaymentPaid     = "paid"
)

// Order 订单表，由上游下单流程创建
type Order struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	OrderNumber   string    `gorm:"column:order_number;uniqueIndex;not null"`
	Status        string    `gorm:"column:status;default:pending"`
	PaymentStatus string    `gorm:"column:payment_status;default:pending"`
	Total         float64   `gorm:"column:total"`
	Currency      string    `gorm:"column:currency;default:VND"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
