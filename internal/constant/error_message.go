package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 对外返回的英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	CodeSuccess:            {"操作成功", "Success"},
	CodeInternalError:      {"系统内部错误", "Internal server error"},
	CodeStorageFailure:     {"数据库错误", "System error"},
	CodeNotificationFailed: {"支付通知发送失败", "Notification failed"},

	CodeMissingParams:    {"缺少请求参数", "No parameters provided"},
	CodeUnknownGateway:   {"未知支付网关", "Unknown payment gateway"},
	CodeInvalidSignature: {"签名错误", "Invalid signature"},
	CodeMissingReference: {"缺少交易流水号", "Missing transaction reference"},

	CodeRecordNotFound: {"订单不存在", "Order not found"},
}
