package gateway

import "github.com/shopspring/decimal"

// parseAmount 金额解析，minorUnits 为最小单位倍数（VNPay 为 100）
func parseAmount(raw string, minorUnits int64) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if minorUnits > 1 {
		d = d.Div(decimal.NewFromInt(minorUnits))
	}
	return d
}
