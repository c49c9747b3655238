package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/gateway"
	"payment-ipn-api/internal/notify"
	"payment-ipn-api/internal/settlement"
)

type settlementApplier interface {
	Apply(ctx context.Context, transactionID string, outcome gateway.Outcome, params gateway.Params) (settlement.Result, error)
}

type paymentNotifier interface {
	PaymentCompleted(ctx context.Context, kind gateway.Kind, cb gateway.Callback, params gateway.Params)
}

// IpnService 网关回调处理：识别 -> 验签 -> 映射 -> 结算 -> 通知
type IpnService struct {
	gateways *gateway.Registry
	applier  settlementApplier
	notifier paymentNotifier
	alert    notify.Alerter
	log      logrus.FieldLogger
}

// NewIpnService notifier、alert 均可为 nil
func NewIpnService(gateways *gateway.Registry, applier settlementApplier, notifier paymentNotifier, alert notify.Alerter, log logrus.FieldLogger) *IpnService {
	return &IpnService{
		gateways: gateways,
		applier:  applier,
		notifier: notifier,
		alert:    alert,
		log:      log.WithField("component", "ipn"),
	}
}

// HandleEvent 任何未预期的异常都转换为通用 500，不向网关暴露内部信息
func (s *IpnService) HandleEvent(ctx context.Context, evt dto.IpnEvent) (result dto.IpnResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("[IPN] unhandled panic")
			result = dto.ErrorResult(http.StatusInternalServerError, constant.ErrInternal.Message())
		}
	}()

	params, raw, err := DecodeParams(evt)
	if err != nil {
		s.log.WithError(err).Warn("[IPN] callback rejected")
		return dto.ErrorResult(http.StatusBadRequest, constant.ErrMissingParameters.Message())
	}

	gw, ok := s.gateways.Select(params)
	if !ok {
		s.log.WithError(constant.ErrUnknownGateway).WithField("keys", len(params)).Warn("[IPN] callback rejected")
		return dto.ErrorResult(http.StatusBadRequest, constant.ErrUnknownGateway.Message())
	}
	return s.process(ctx, gw, params, raw)
}

func (s *IpnService) process(ctx context.Context, gw gateway.Gateway, params gateway.Params, raw string) dto.IpnResult {
	log := s.log.WithField("gateway", gw.Kind().String())

	if !gw.Verify(ctx, params, raw) {
		log.WithError(constant.ErrInvalidSignature).Warn("[IPN] callback rejected")
		return gw.Ack(gateway.AckInvalidSignature)
	}

	cb := gw.Map(params)
	if cb.Reference == "" {
		log.WithError(constant.ErrMissingReference).Warn("[IPN] callback rejected")
		return gw.Ack(gateway.AckMissingReference)
	}
	log = log.WithFields(logrus.Fields{
		"transaction_id": cb.Reference,
		"status":         cb.Outcome.String(),
		"code":           cb.Code,
	})

	res, err := s.applier.Apply(ctx, cb.Reference, cb.Outcome, params)
	if err != nil {
		log.WithError(err).Error("[IPN] settlement failed")
		if s.alert != nil {
			s.alert.Alert("error", "支付回调入库失败", map[string]string{
				"gateway":        gw.Kind().String(),
				"transaction_id": cb.Reference,
				"amount":         cb.Amount.String(),
				"error":          err.Error(),
			})
		}
		if errors.Is(err, constant.ErrStorageFailure) {
			return gw.Ack(gateway.AckSystemError)
		}
		return dto.ErrorResult(http.StatusInternalServerError, constant.ErrInternal.Message())
	}
	if res == settlement.NotFound {
		log.WithError(constant.ErrRecordNotFound).Info("[IPN] no pending payment for reference")
		return gw.Ack(gateway.AckNotFound)
	}

	if cb.Outcome == gateway.OutcomeCompleted && s.notifier != nil {
		s.notifier.PaymentCompleted(ctx, gw.Kind(), cb, params)
	}
	log.Info("[IPN] callback processed")
	return gw.Ack(gateway.AckSuccess)
}
