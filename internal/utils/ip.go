package utils

import (
	"net"
	"strings"
)

// MatchIPRules 单 IP / CIDR / 前缀通配符（如 172.16.5.*）
func MatchIPRules(ip string, rules []string) bool {
	if ip == "" {
		return false
	}
	for _, rule := range rules {
		if matchRule(ip, strings.TrimSpace(rule)) {
			return true
		}
	}
	return false
}

func matchRule(ip, rule string) bool {
	if rule == "" {
		return false
	}
	if rule == ip {
		return true
	}

	if strings.HasSuffix(rule, "*") {
		prefix := strings.TrimSuffix(rule, "*")
		return strings.HasPrefix(ip, prefix)
	}

	if _, cidr, err := net.ParseCIDR(rule); err == nil {
		return cidr.Contains(net.ParseIP(ip))
	}
	return false
}
