package gateway

import (
	"context"

	"github.com/shopspring/decimal"

	"payment-ipn-api/internal/dto"
)

// Params 解码后的回调参数，key 为网关字段名
type Params map[string]string

// Kind 网关类型，只根据参数结构判断
type Kind int

const (
	KindUnknown Kind = iota
	KindVNPay
	KindPayPal
)

func (k Kind) String() string {
	switch k {
	case KindVNPay:
		return "vnpay"
	case KindPayPal:
		return "paypal"
	default:
		return "unknown"
	}
}

// Outcome 统一支付结果
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeCompleted
)

func (o Outcome) String() string {
	if o == OutcomeCompleted {
		return "completed"
	}
	return "failed"
}

// Callback 网关回调映射后的统一结构
type Callback struct {
	Reference string          // 交易流水号，为空表示缺失
	Outcome   Outcome         // 映射后的结果
	Code      string          // 网关原始状态码
	Amount    decimal.Decimal // 主币单位金额，解析失败为 0
}

// Ack 对网关的应答类型
type Ack int

const (
	AckSuccess Ack = iota
	AckInvalidSignature
	AckMissingReference
	AckNotFound
	AckSystemError
)

// Gateway 每种网关一个实现：验签、状态映射、应答编码。
// raw 为解码后的原始表单 body（GET 回调为空），需要原样回传校验的网关使用
type Gateway interface {
	Kind() Kind
	Verify(ctx context.Context, params Params, raw string) bool
	Map(params Params) Callback
	Ack(ack Ack) dto.IpnResult
}

// Registry 已注册的网关实现
type Registry struct {
	gateways map[Kind]Gateway
}

func NewRegistry(gws ...Gateway) *Registry {
	r := &Registry{gateways: make(map[Kind]Gateway, len(gws))}
	for _, g := range gws {
		r.gateways[g.Kind()] = g
	}
	return r
}

// Select 识别网关并返回对应实现；未知或未注册返回 false
func (r *Registry) Select(params Params) (Gateway, bool) {
	kind := Classify(params)
	if kind == KindUnknown {
		return nil, false
	}
	g, ok := r.gateways[kind]
	return g, ok
}
