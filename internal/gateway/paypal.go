package gateway

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/utils"
)

// PayPal IPN 字段
const (
	paypalTxnID         = "txn_id"
	paypalPaymentStatus = "payment_status"
	paypalGross         = "mc_gross"
	paypalReceiverEmail = "receiver_email"

	paypalValidateCmd = "cmd=_notify-validate"

	paypalCompleted = "Completed"
	paypalVerified  = "VERIFIED"
)

// PayPal 通过回传 cmd=_notify-validate 做带外校验的网关
type PayPal struct {
	verifyURL     string
	receiverEmail string
	client        *http.Client
	log           logrus.FieldLogger
}

func NewPayPal(verifyURL, receiverEmail string, client *http.Client, log logrus.FieldLogger) *PayPal {
	return &PayPal{
		verifyURL:     verifyURL,
		receiverEmail: receiverEmail,
		client:        client,
		log:           log.WithField("gateway", KindPayPal.String()),
	}
}

func (g *PayPal) Kind() Kind { return KindPayPal }

// Verify 把收到的 body 原样（字段顺序、编码、空值字段不变）回传给 PayPal；
// 未配置回查地址或没有原始 body（非 POST 回调）时拒绝
func (g *PayPal) Verify(ctx context.Context, params Params, raw string) bool {
	if g.verifyURL == "" {
		g.log.Warn("[IPN-PAYPAL] verify url not configured, rejecting callback")
		return false
	}
	if g.receiverEmail != "" && !strings.EqualFold(params[paypalReceiverEmail], g.receiverEmail) {
		g.log.WithField("receiver_email", params[paypalReceiverEmail]).Warn("[IPN-PAYPAL] receiver email mismatch")
		return false
	}

	if raw == "" {
		g.log.Warn("[IPN-PAYPAL] empty message body, rejecting callback")
		return false
	}
	form := paypalValidateCmd + "&" + raw

	var body string
	err := utils.DoWithRetry(ctx, 2, 200*time.Millisecond, func() error {
		var err error
		body, err = utils.HttpPostForm(ctx, g.client, g.verifyURL, form)
		return err
	}, func(attempt int, err error) {
		g.log.WithError(err).WithField("attempt", attempt).Warn("[IPN-PAYPAL] postback failed")
	})
	if err != nil {
		return false
	}
	return strings.TrimSpace(body) == paypalVerified
}

func (g *PayPal) Map(params Params) Callback {
	status := params[paypalPaymentStatus]
	outcome := OutcomeFailed
	if status == paypalCompleted {
		outcome = OutcomeCompleted
	}
	return Callback{
		Reference: params[paypalTxnID],
		Outcome:   outcome,
		Code:      status,
		Amount:    parseAmount(params[paypalGross], 1),
	}
}

func (g *PayPal) Ack(ack Ack) dto.IpnResult {
	switch ack {
	case AckSuccess:
		return dto.JSONResult(http.StatusOK, dto.MessageBody{Message: constant.RspMsgSuccess})
	case AckInvalidSignature:
		return dto.ErrorResult(http.StatusBadRequest, constant.RspMsgInvalidSignature)
	case AckMissingReference:
		return dto.ErrorResult(http.StatusBadRequest, constant.RspMsgMissingReference)
	case AckNotFound:
		return dto.ErrorResult(http.StatusBadRequest, constant.RspMsgOrderNotFound)
	default:
		return dto.ErrorResult(http.StatusInternalServerError, constant.ErrInternal.Message())
	}
}
