package constant

import "fmt"

// Error 错误接口
type Error interface {
	error
	Code() int
	Message() string
}

// CustomError 自定义错误实现
type CustomError struct {
	code    int
	message string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

// Is 按错误码匹配，便于 errors.Is 穿透 %w 包装
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && t.code == e.code
}

// NewError 创建错误
func NewError(code int) Error {
	if info, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: info.EN}
	}
	return &CustomError{code: code, message: "Unknown error"}
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}

var (
	ErrMissingParameters   = NewError(CodeMissingParams)
	ErrUnknownGateway      = NewError(CodeUnknownGateway)
	ErrInvalidSignature    = NewError(CodeInvalidSignature)
	ErrMissingReference    = NewError(CodeMissingReference)
	ErrRecordNotFound      = NewError(CodeRecordNotFound)
	ErrStorageFailure      = NewError(CodeStorageFailure)
	ErrNotificationFailure = NewError(CodeNotificationFailed)
	ErrInternal            = NewError(CodeInternalError)
)
