package gateway

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/utils"
)

// VNPay IPN 字段
const (
	VNPaySecureHash     = "vnp_SecureHash"
	VNPaySecureHashType = "vnp_SecureHashType"
	VNPayTxnRef         = "vnp_TxnRef"
	VNPayResponseCode   = "vnp_ResponseCode"
	VNPayAmount         = "vnp_Amount"

	vnpaySuccessCode = "00"
	vnpayAmountUnit  = 100 // vnp_Amount = 实际金额 * 100
)

// VNPay HMAC-SHA256 签名的网关
type VNPay struct {
	hashKey string
	log     logrus.FieldLogger
}

func NewVNPay(hashKey string, log logrus.FieldLogger) *VNPay {
	return &VNPay{hashKey: hashKey, log: log.WithField("gateway", KindVNPay.String())}
}

func (g *VNPay) Kind() Kind { return KindVNPay }

// SignData 签名原文，不含 vnp_SecureHash / vnp_SecureHashType
func SignData(params Params) string {
	return utils.CanonicalQuery(params, VNPaySecureHash, VNPaySecureHashType)
}

// Sign 计算参数签名，用于测试与对账工具
func Sign(hashKey string, params Params) string {
	return utils.HmacSHA256Hex(hashKey, SignData(params))
}

// Verify 校验 vnp_SecureHash；缺少签名或未配置密钥一律失败
func (g *VNPay) Verify(_ context.Context, params Params, _ string) bool {
	signature := params[VNPaySecureHash]
	if signature == "" {
		g.log.Warn("[IPN-VNPAY] missing vnp_SecureHash")
		return false
	}
	if g.hashKey == "" {
		g.log.Error("[IPN-VNPAY] VNPAY_HASH_KEY not configured")
		return false
	}
	return utils.VerifyHmacSHA256(g.hashKey, SignData(params), signature)
}

func (g *VNPay) Map(params Params) Callback {
	code := params[VNPayResponseCode]
	outcome := OutcomeFailed
	if code == vnpaySuccessCode {
		outcome = OutcomeCompleted
	}
	return Callback{
		Reference: params[VNPayTxnRef],
		Outcome:   outcome,
		Code:      code,
		Amount:    parseAmount(params[VNPayAmount], vnpayAmountUnit),
	}
}

func (g *VNPay) Ack(ack Ack) dto.IpnResult {
	switch ack {
	case AckSuccess:
		return vnpayAck(http.StatusOK, constant.RspCodeSuccess, constant.RspMsgSuccess)
	case AckInvalidSignature:
		return vnpayAck(http.StatusBadRequest, constant.RspCodeInvalidSignature, constant.RspMsgInvalidSignature)
	case AckMissingReference:
		return vnpayAck(http.StatusBadRequest, constant.RspCodeOrderNotFound, constant.RspMsgMissingReference)
	case AckNotFound:
		return vnpayAck(http.StatusBadRequest, constant.RspCodeOrderNotFound, constant.RspMsgOrderNotFound)
	default:
		return vnpayAck(http.StatusInternalServerError, constant.RspCodeSystemError, constant.RspMsgSystemError)
	}
}

func vnpayAck(status int, code, msg string) dto.IpnResult {
	return dto.JSONResult(status, dto.GatewayAck{RspCode: code, Message: msg})
}
