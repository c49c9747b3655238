package constant

// 系统级错误码 (1xxx)
const (
	CodeSuccess            = 0    // 处理成功
	CodeInternalError      = 1000 // 未预期的内部错误，统一返回 500
	CodeStorageFailure     = 1001 // 数据库事务失败，网关应重试投递
	CodeNotificationFailed = 1002 // 支付事件发布失败，仅记录日志
)

// 参数与校验错误码 (11xx)
const (
	CodeMissingParams    = 1100 // 请求中没有任何参数
	CodeUnknownGateway   = 1101 // 无法识别的支付网关
	CodeInvalidSignature = 1102 // 签名校验失败
	CodeMissingReference = 1103 // 缺少交易流水号
)

// 订单错误码 (21xx)
const (
	CodeRecordNotFound = 2100 // 待处理的支付记录不存在（或已处理）
)
