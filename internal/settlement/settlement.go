package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dao"
	"payment-ipn-api/internal/gateway"
	ordermodel "payment-ipn-api/internal/model/order"
)

// Result 结算结果
type Result int

const (
	// Applied 本次回调完成了 pending -> 终态的迁移
	Applied Result = iota
	// NotFound 没有 pending 记录：重复投递或未知流水号
	NotFound
)

func (r Result) String() string {
	if r == Applied {
		return "applied"
	}
	return "not_found"
}

type paymentStore interface {
	SettlePending(ctx context.Context, transactionID, status string, gatewayResponse []byte, processedAt time.Time) (*dao.SettledPayment, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*ordermodel.Payment, error)
}

// Applier 把网关回调结果写入支付/订单
type Applier struct {
	store paymentStore
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewApplier(store paymentStore, log logrus.FieldLogger) *Applier {
	return &Applier{store: store, log: log.WithField("component", "settlement"), now: time.Now}
}

// Apply 同一流水号最多迁移一次；存储错误统一包装为 ErrStorageFailure
func (a *Applier) Apply(ctx context.Context, transactionID string, outcome gateway.Outcome, params gateway.Params) (Result, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return NotFound, fmt.Errorf("%w: encode gateway response: %v", constant.ErrStorageFailure, err)
	}

	status := paymentStatus(outcome)
	log := a.log.WithFields(logrus.Fields{"transaction_id": transactionID, "status": status})

	settled, err := a.store.SettlePending(ctx, transactionID, status, raw, a.now())
	if err != nil {
		log.WithError(err).Error("[SETTLEMENT] store failure")
		return NotFound, fmt.Errorf("%w: %v", constant.ErrStorageFailure, err)
	}
	if settled == nil {
		a.logSkipped(ctx, log, transactionID)
		return NotFound, nil
	}

	log.WithFields(logrus.Fields{"payment_id": settled.PaymentID, "order_id": settled.OrderID}).
		Info("[SETTLEMENT] payment settled")
	return Applied, nil
}

func paymentStatus(o gateway.Outcome) string {
	switch o {
	case gateway.OutcomeCompleted:
		return ordermodel.PaymentStatusCompleted
	default:
		return ordermodel.PaymentStatusFailed
	}
}

// logSkipped 区分重复投递与未知流水号，只用于日志，查询失败不影响结果
func (a *Applier) logSkipped(ctx context.Context, log logrus.FieldLogger, transactionID string) {
	p, err := a.store.GetByTransactionID(ctx, transactionID)
	switch {
	case err != nil:
		log.WithError(err).Warn("[SETTLEMENT] no pending payment, lookup failed")
	case p == nil:
		log.WithError(constant.ErrRecordNotFound).Warn("[SETTLEMENT] unknown transaction reference")
	default:
		log.WithField("current_status", p.Status).Info("[SETTLEMENT] already settled, duplicate delivery skipped")
	}
}
