package service

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"payment-ipn-api/internal/constant"
	"payment-ipn-api/internal/dto"
	"payment-ipn-api/internal/gateway"
)

// DecodeParams 把传输层请求解码成扁平参数：POST 解析表单 body，其他方法使用 query 参数。
// raw 为 base64 解码后的原始 body，GET 回调为空
func DecodeParams(evt dto.IpnEvent) (params gateway.Params, raw string, err error) {
	params = gateway.Params{}

	if strings.EqualFold(evt.HTTPMethod, http.MethodPost) {
		body := evt.Body
		if evt.IsBase64Encoded && body != "" {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return nil, "", fmt.Errorf("%w: base64 body: %v", constant.ErrMissingParameters, err)
			}
			body = string(decoded)
		}
		raw = body
		// 与常见 IPN 表单解析一致：空值字段丢弃，重复字段只取第一个非空值；
		// 非法转义的片段跳过，其余字段照常使用
		values, _ := url.ParseQuery(body)
		for k, vs := range values {
			for _, v := range vs {
				if v != "" {
					params[k] = v
					break
				}
			}
		}
	} else {
		for k, v := range evt.QueryStringParameters {
			params[k] = v
		}
	}

	if len(params) == 0 {
		return nil, "", constant.ErrMissingParameters
	}
	return params, raw, nil
}
