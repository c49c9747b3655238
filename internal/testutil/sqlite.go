package testutil

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	ordermodel "payment-ipn-api/internal/model/order"
)

// NewSQLiteDB 每个测试独立的内存库，表结构与 MySQL 一致
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle failed: %v", err)
	}
	// :memory: 每个连接一份库，只能用单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&ordermodel.Order{}, &ordermodel.Payment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

// SeedPendingPayment 模拟下单流程创建的 pending 订单和支付
func SeedPendingPayment(t *testing.T, db *gorm.DB, transactionID string, amount float64) (ordermodel.Order, ordermodel.Payment) {
	t.Helper()

	order := ordermodel.Order{
		OrderNumber:   "ORD-" + transactionID,
		Status:        "pending",
		PaymentStatus: "pending",
		Total:         amount,
		Currency:      "VND",
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	payment := ordermodel.Payment{
		OrderID:       order.ID,
		PaymentMethod: "vnpay",
		Status:        ordermodel.PaymentStatusPending,
		Amount:        amount,
		Currency:      "VND",
		TransactionID: transactionID,
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	return order, payment
}

// ReloadOrder 读取最新订单状态
func ReloadOrder(t *testing.T, db *gorm.DB, id uint) ordermodel.Order {
	t.Helper()
	var o ordermodel.Order
	if err := db.First(&o, id).Error; err != nil {
		t.Fatalf("reload order %d failed: %v", id, err)
	}
	return o
}
