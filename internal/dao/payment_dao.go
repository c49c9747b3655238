package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	ordermodel "payment-ipn-api/internal/model/order"
)

type PaymentDao struct {
	DB *gorm.DB
}

// SettledPayment 一次成功的终态迁移
type SettledPayment struct {
	PaymentID uint
	OrderID   uint
	Status    string
}

func NewPaymentDao(db *gorm.DB) *PaymentDao {
	return &PaymentDao{DB: db}
}

// 安全检查方法
func (r *PaymentDao) checkDB() error {
	if r == nil {
		return errors.New("PaymentDao is nil")
	}
	if r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// SettlePending 在同一事务内把 pending 支付迁移到终态；
// 支付已处理或流水号不存在时返回 (nil, nil)
func (r *PaymentDao) SettlePending(ctx context.Context, transactionID, status string, gatewayResponse []byte, processedAt time.Time) (*SettledPayment, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("settle payment failed: %w", err)
	}

	var settled *SettledPayment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p ordermodel.Payment
		err := tx.Select("id", "order_id").
			Where("transaction_id = ? AND status = ?", transactionID, ordermodel.PaymentStatusPending).
			Take(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("query pending payment failed: %w", err)
		}

		// 条件更新是幂等的关键：并发投递时只有一个事务能命中 pending 行
		res := tx.Model(&ordermodel.Payment{}).
			Where("id = ? AND status = ?", p.ID, ordermodel.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":           status,
				"processed_at":     processedAt,
				"gateway_response": datatypes.JSON(gatewayResponse),
			})
		if res.Error != nil {
			return fmt.Errorf("update payment %d failed: %w", p.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if status == ordermodel.PaymentStatusCompleted {
			if err := tx.Model(&ordermodel.Order{}).
				Where("id = ?", p.OrderID).
				Updates(map[string]interface{}{
					"payment_status": ordermodel.OrderPaymentPaid,
					"status":         ordermodel.OrderStatusConfirmed,
				}).Error; err != nil {
				return fmt.Errorf("update order %d failed: %w", p.OrderID, err)
			}
		}

		settled = &SettledPayment{PaymentID: p.ID, OrderID: p.OrderID, Status: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// GetByTransactionID 根据交易流水号查询支付记录
func (r *PaymentDao) GetByTransactionID(ctx context.Context, transactionID string) (*ordermodel.Payment, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get by transaction id failed: %w", err)
	}

	var m ordermodel.Payment
	err := r.DB.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}
