package gateway

import "strings"

const vnpayKeyPrefix = "vnp_"

// Classify 根据参数 key 判断网关；vnp_ 前缀优先于 PayPal 字段
func Classify(params Params) Kind {
	for k := range params {
		if strings.HasPrefix(k, vnpayKeyPrefix) {
			return KindVNPay
		}
	}
	if _, ok := params[paypalTxnID]; ok {
		return KindPayPal
	}
	if _, ok := params[paypalPaymentStatus]; ok {
		return KindPayPal
	}
	return KindUnknown
}
