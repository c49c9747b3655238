package constant

// VNPay IPN 应答码 (RspCode)
const (
	RspCodeSuccess          = "00"
	RspCodeOrderNotFound    = "02"
	RspCodeInvalidSignature = "97"
	RspCodeSystemError      = "99"
)

// VNPay IPN 应答文案
const (
	RspMsgSuccess          = "Success"
	RspMsgInvalidSignature = "Invalid signature"
	RspMsgMissingReference = "Missing transaction reference"
	RspMsgOrderNotFound    = "Order not found"
	RspMsgSystemError      = "System error"
)
