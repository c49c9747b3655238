package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VNPAY_HASH_KEY", "TMNCODE123456789")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_USER", "ipn")
	t.Setenv("DB_NAME", "ecommerce")
}

func TestLoad_FromLegacyEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("PAYMENT_NOTIFICATION_TOPIC_ARN", "arn:aws:sns:ap-southeast-1:123:payments")

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "TMNCODE123456789", c.VNPay.HashKey)
	require.Equal(t, "127.0.0.1", c.Mysql.Host)
	require.Equal(t, 3307, c.Mysql.Port)
	require.Equal(t, "ipn", c.Mysql.Username)
	require.Equal(t, "secret", c.Mysql.Password)
	require.Equal(t, "ecommerce", c.Mysql.Database)
	require.Equal(t, "arn:aws:sns:ap-southeast-1:123:payments", c.Notify.Topic)
	require.True(t, c.NotificationsEnabled())
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "8080", c.Server.Port)
	require.Equal(t, []string{"127.0.0.1"}, c.Server.TrustedProxies)
	require.Equal(t, 3306, c.Mysql.Port)
	require.Equal(t, "utf8mb4", c.Mysql.Charset)
	require.Equal(t, "rabbitmq", c.Notify.Driver)
	require.Equal(t, "payment_events", c.RabbitMQ.Exchange)
	require.Equal(t, int64(1), c.Node.ID)
	require.False(t, c.NotificationsEnabled())
}

func TestLoad_MissingHashKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VNPAY_HASH_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "HashKey")
}

func TestLoad_YamlFileWithEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("IPN_NOTIFY_DRIVER", "redis")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: "9090"
  trustedProxies:
    - 10.0.0.0/8
  ipWhitelist:
    - 113.160.92.202
    - 203.205.17.226
notify:
  driver: sns
  topic: payments
redis:
  addr: 127.0.0.1:6379
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9090", c.Server.Port)
	require.Equal(t, []string{"113.160.92.202", "203.205.17.226"}, c.Server.IPWhitelist)
	require.Equal(t, []string{"10.0.0.0/8"}, c.Server.TrustedProxies)
	require.Equal(t, "redis", c.Notify.Driver)
	require.Equal(t, "payments", c.Notify.Topic)
	require.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
}

func TestLoad_InvalidDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("IPN_NOTIFY_DRIVER", "kafka")

	_, err := Load("")
	require.Error(t, err)
}
