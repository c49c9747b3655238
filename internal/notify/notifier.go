package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/event"
	"payment-ipn-api/internal/gateway"
	"payment-ipn-api/internal/idgen"
)

// Notifier 支付完成后发布一条事件；发布失败只记录，不影响应答
type Notifier struct {
	pub   event.Publisher
	topic string
	ids   idgen.Generator
	alert Alerter
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewNotifier pub 为 nil 或 topic 为空时通知关闭；alert 可为 nil
func NewNotifier(pub event.Publisher, topic string, ids idgen.Generator, alert Alerter, log logrus.FieldLogger) *Notifier {
	return &Notifier{
		pub:   pub,
		topic: topic,
		ids:   ids,
		alert: alert,
		log:   log.WithField("component", "notifier"),
		now:   time.Now,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.pub != nil && n.topic != ""
}

// PaymentCompleted 发布 payment_completed 事件
func (n *Notifier) PaymentCompleted(ctx context.Context, kind gateway.Kind, cb gateway.Callback, params gateway.Params) {
	if !n.Enabled() {
		return
	}
	log := n.log.WithFields(logrus.Fields{
		"transaction_id": cb.Reference,
		"gateway":        kind.String(),
	})

	body, err := n.buildEvent(kind, cb, params)
	if err == nil {
		err = n.pub.Publish(ctx, n.topic, body)
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", constant.ErrNotificationFailure, err)
		log.WithError(err).Error("[NOTIFY] payment event dropped")
		if n.alert != nil {
			n.alert.Alert("warn", "支付事件发布失败", map[string]string{
				"gateway":        kind.String(),
				"transaction_id": cb.Reference,
				"amount":         cb.Amount.String(),
				"error":          err.Error(),
			})
		}
		return
	}
	log.Info("[NOTIFY] payment event published")
}

func (n *Notifier) buildEvent(kind gateway.Kind, cb gateway.Callback, params gateway.Params) ([]byte, error) {
	evt := dto.PaymentEvent{
		EventType:     dto.EventPaymentCompleted,
		TransactionID: cb.Reference,
		Timestamp:     n.now().UTC().Format(time.RFC3339),
		Gateway:       kind.String(),
		Data:          map[string]string(params),
	}
	if n.ids != nil {
		evt.EventID = n.ids.NextID()
	}
	if !cb.Amount.IsZero() {
		evt.Amount = cb.Amount.String()
	}
	return json.Marshal(evt)
}
