package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// CanonicalQuery 生成签名原文：剔除 exclude 字段和空值，
// 以 "k=v" 整串按字节序升序排序后用 & 拼接
func CanonicalQuery(params map[string]string, exclude ...string) string {
	skip := make(map[string]struct{}, len(exclude))
	for _, k := range exclude {
		skip[k] = struct{}{}
	}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		if _, ok := skip[k]; ok || v == "" {
			continue
		}
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "&")
}

// HmacSHA256Hex 计算 HMAC-SHA256，返回小写十六进制
func HmacSHA256Hex(secretKey, message string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHmacSHA256 常量时间比较签名，密钥或签名为空一律失败
func VerifyHmacSHA256(secretKey, message, signature string) bool {
	if secretKey == "" || signature == "" {
		return false
	}
	expected := HmacSHA256Hex(secretKey, message)
	return hmac.Equal([]byte(expected), []byte(signature))
}
